package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maudtools/maudup/internal/document"
	"github.com/maudtools/maudup/internal/migrate"
	"github.com/maudtools/maudup/internal/tui"
)

func newModelCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "model OLD_TOML",
		Short: "Update a single kinetic model file to the current schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			rc, err := newRunContext()
			if err != nil {
				return err
			}
			defer rc.close()
			return runModel(rc, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input with .updated.toml)")
	return cmd
}

func runModel(rc *runContext, input, output string) error {
	if output == "" {
		output = defaultOutput(input, ".toml")
	}
	doc, err := document.LoadModel(input)
	if err != nil {
		rc.log.Printf("model update failed: %v", err)
		return err
	}
	rc.note("detected shape %s for %s", doc.Shape, input)

	migrated, err := migrate.NewRunner(migrate.Steps()).Run(doc)
	if err != nil {
		rc.log.Printf("model update failed: %v", err)
		return err
	}

	backup, err := rc.ensureWritable(output)
	if err != nil {
		return err
	}
	if err := document.WriteModel(migrated.Model, output, backup); err != nil {
		rc.log.Printf("model update failed: %v", err)
		return err
	}
	rc.log.Printf("updated kinetic model: %s -> %s", input, output)
	fmt.Println(tui.SuccessLine("kinetic model", output))
	return nil
}

// defaultOutput derives an output path next to the input, e.g.
// model.toml -> model.updated.toml.
func defaultOutput(input, ext string) string {
	base := strings.TrimSuffix(input, ext)
	return base + ".updated" + ext
}
