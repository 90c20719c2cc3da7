// cmd/maudup/main.go
//
// Entry point for the maudup CLI. maudup updates the data files of a Maud
// kinetic-modelling project after the toolkit's schema change: the kinetic
// model TOML, the priors CSV, the measurements CSV, the experimental setup
// and the main config. Inputs are never modified in place unless explicitly
// forced, and every write is atomic.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maudtools/maudup/internal/config"
	"github.com/maudtools/maudup/internal/logging"
	"github.com/maudtools/maudup/internal/tui"
)

const version = "maudup 0.2.0"

var (
	flagForce   bool
	flagNoInput bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "maudup",
	Short:         "Update Maud kinetic model data files to the current schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&flagForce, "force", "f", false, "overwrite existing outputs without asking")
	rootCmd.PersistentFlags().BoolVar(&flagNoInput, "no-input", false, "never prompt; fail instead of overwriting")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newDirCmd())
	rootCmd.AddCommand(newModelCmd())
	rootCmd.AddCommand(newPriorsCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the maudup version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorLine(err))
		os.Exit(1)
	}
}

// runContext is the per-invocation environment shared by the subcommands.
type runContext struct {
	settings config.Settings
	log      *logging.Logger
}

// newRunContext loads project settings from the working directory and opens
// the run log. A broken log directory degrades to no logging rather than
// blocking the migration.
func newRunContext() (*runContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	settings, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if flagVerbose {
		settings.Verbose = true
	}
	log, err := logging.New(settings.LogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.NoteLine(err.Error()))
		log = nil
	}
	return &runContext{settings: settings, log: log}, nil
}

func (rc *runContext) close() {
	rc.log.Close()
}

// ensureWritable gates writing to path when it already exists. The answer is
// the backup suffix to use (empty when no backup is wanted) or an error when
// the user or policy declined.
func (rc *runContext) ensureWritable(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	}
	policy := rc.settings.Overwrite
	if flagForce {
		policy = config.OverwriteForce
	} else if flagNoInput {
		policy = config.OverwriteNever
	}
	switch policy {
	case config.OverwriteForce:
		return rc.settings.BackupSuffix, nil
	case config.OverwriteNever:
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	default:
		ok, err := tui.Confirm(fmt.Sprintf("%s already exists. Overwrite?", path))
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%s already exists; not overwriting", path)
		}
		return rc.settings.BackupSuffix, nil
	}
}

func (rc *runContext) note(format string, args ...any) {
	rc.log.Printf(format, args...)
	if rc.settings.Verbose {
		fmt.Println(tui.NoteLine(fmt.Sprintf(format, args...)))
	}
}
