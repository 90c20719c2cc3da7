package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maudtools/maudup/internal/document"
	"github.com/maudtools/maudup/internal/kinetic"
	"github.com/maudtools/maudup/internal/migrate"
	"github.com/maudtools/maudup/internal/priors"
	"github.com/maudtools/maudup/internal/tui"
)

func newPriorsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "priors OLD_CSV NEW_MODEL_TOML",
		Short: "Update a priors file against an already-updated kinetic model",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			rc, err := newRunContext()
			if err != nil {
				return err
			}
			defer rc.close()
			return runPriors(rc, args[0], args[1], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input with .updated.csv)")
	return cmd
}

func runPriors(rc *runContext, input, modelPath, output string) error {
	if output == "" {
		output = defaultOutput(input, ".csv")
	}
	doc, err := document.LoadModel(modelPath)
	if err != nil {
		rc.log.Printf("priors update failed: %v", err)
		return err
	}
	if doc.Shape != kinetic.ShapeCurrent {
		err := migrate.NewError(migrate.KindUnrecognizedShape, modelPath,
			fmt.Errorf("the model must already be in the current schema; run `maudup model` first"))
		rc.log.Printf("priors update failed: %v", err)
		return err
	}

	backup, err := rc.ensureWritable(output)
	if err != nil {
		return err
	}
	if err := priors.UpdateFile(input, output, doc.Model, backup); err != nil {
		rc.log.Printf("priors update failed: %v", err)
		return err
	}
	rc.log.Printf("updated priors: %s -> %s", input, output)
	fmt.Println(tui.SuccessLine("priors", output))
	return nil
}
