package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maudtools/maudup/internal/dataset"
	"github.com/maudtools/maudup/internal/tui"
)

func newDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir OLD_DIR NEW_DIR",
		Short: "Update a whole Maud data directory",
		Long: `Update a whole Maud data directory.

Reads config.toml in OLD_DIR to find the kinetic model, priors, measurements
and experimental setup files, migrates each one and writes the results under
NEW_DIR together with an updated config.toml.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			rc, err := newRunContext()
			if err != nil {
				return err
			}
			defer rc.close()
			return runDir(rc, args[0], args[1])
		},
	}
}

func runDir(rc *runContext, dataDir, outDir string) error {
	// Every destination file gets its own overwrite check: a data directory
	// may already hold some outputs but not others.
	results, err := dataset.Update(dataDir, outDir, dataset.Options{
		EnsureWritable: rc.ensureWritable,
		Log:            rc.log,
	})
	if err != nil {
		rc.log.Printf("directory update failed: %v", err)
		return err
	}
	for _, r := range results {
		fmt.Println(tui.SuccessLine(r.Kind, r.Output))
	}
	fmt.Println(tui.NoteLine(fmt.Sprintf("%d files updated under %s", len(results), outDir)))
	return nil
}
