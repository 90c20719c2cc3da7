// internal/dataset/dataset.go
//
// Directory-level update. A Maud data directory is a config.toml naming the
// kinetic model, priors, measurements and experimental setup files, plus
// optional formation-energy (dgf) files and user inits. The updater walks
// these files sequentially, each one independently, and stops at the first
// failure so the output directory never mixes migrated and unmigrated
// generations.

package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/maudtools/maudup/internal/document"
	"github.com/maudtools/maudup/internal/kinetic"
	"github.com/maudtools/maudup/internal/logging"
	"github.com/maudtools/maudup/internal/migrate"
	"github.com/maudtools/maudup/internal/priors"
)

// ConfigFileName is the entry point of a Maud data directory.
const ConfigFileName = "config.toml"

// Legacy config.toml keys naming the per-kind files.
const (
	keyKineticModel = "kinetic_model"
	keyPriors       = "priors"
	keyMeasurements = "measurements"
	keyBioConfig    = "biological_config"
	keyDgfMean      = "dgf_mean_file"
	keyDgfCov       = "dgf_covariance_file"
	keyUserInits    = "user_inits_file"
)

// Options tunes a directory update.
type Options struct {
	// Backup is the backup suffix for overwritten outputs, empty disables.
	Backup string
	// EnsureWritable gates every destination path before it is replaced.
	// It returns the backup suffix to use for that path, or an error to
	// refuse the write. Nil permits all writes with the Backup suffix.
	EnsureWritable func(path string) (string, error)
	// Log is an optional run log, nil-safe.
	Log *logging.Logger
}

// Result reports one migrated file.
type Result struct {
	Kind   string // "kinetic model", "priors", ...
	Source string
	Output string
}

// Update migrates a whole data directory from dataDir into outDir and
// returns the per-file results in completion order.
func Update(dataDir, outDir string, opts Options) ([]Result, error) {
	cfg, err := document.LoadTree(filepath.Join(dataDir, ConfigFileName))
	if err != nil {
		return nil, err
	}

	var results []Result
	record := func(kind, src, out string) {
		opts.Log.Printf("updated %s: %s -> %s", kind, src, out)
		results = append(results, Result{Kind: kind, Source: src, Output: out})
	}
	ensure := opts.EnsureWritable
	if ensure == nil {
		ensure = func(string) (string, error) { return opts.Backup, nil }
	}

	modelRel, err := stringKey(cfg, keyKineticModel, dataDir)
	if err != nil {
		return nil, err
	}
	priorsRel, err := stringKey(cfg, keyPriors, dataDir)
	if err != nil {
		return nil, err
	}
	measurementsRel, err := stringKey(cfg, keyMeasurements, dataDir)
	if err != nil {
		return nil, err
	}
	bioRel, err := stringKey(cfg, keyBioConfig, dataDir)
	if err != nil {
		return nil, err
	}

	// The kinetic model goes first: the priors rewrite needs the migrated
	// enzyme-reaction links.
	modelSrc := filepath.Join(dataDir, modelRel)
	modelOut := filepath.Join(outDir, modelRel)
	backup, err := ensure(modelOut)
	if err != nil {
		return nil, err
	}
	model, err := updateModelFile(modelSrc, modelOut, backup)
	if err != nil {
		return nil, err
	}
	record("kinetic model", modelSrc, modelOut)

	priorsSrc := filepath.Join(dataDir, priorsRel)
	priorsOut := filepath.Join(outDir, priorsRel)
	if backup, err = ensure(priorsOut); err != nil {
		return nil, err
	}
	if err := priors.UpdateFile(priorsSrc, priorsOut, model, backup); err != nil {
		return nil, err
	}
	record("priors", priorsSrc, priorsOut)

	measurementsSrc := filepath.Join(dataDir, measurementsRel)
	measurementsOut := filepath.Join(outDir, measurementsRel)
	if backup, err = ensure(measurementsOut); err != nil {
		return nil, err
	}
	if err := UpdateMeasurementsFile(measurementsSrc, measurementsOut, backup); err != nil {
		return nil, err
	}
	record("measurements", measurementsSrc, measurementsOut)

	bioSrc := filepath.Join(dataDir, bioRel)
	bioOut := filepath.Join(outDir, bioRel)
	if backup, err = ensure(bioOut); err != nil {
		return nil, err
	}
	if err := UpdateExperimentalSetupFile(bioSrc, bioOut, backup); err != nil {
		return nil, err
	}
	record("experimental setup", bioSrc, bioOut)

	cfgOut := filepath.Join(outDir, ConfigFileName)
	if backup, err = ensure(cfgOut); err != nil {
		return nil, err
	}
	if err := document.WriteTree(UpdateConfigTree(cfg), cfgOut, backup); err != nil {
		return nil, err
	}
	record("config", filepath.Join(dataDir, ConfigFileName), cfgOut)

	if _, ok := cfg[keyDgfMean]; ok {
		dgfResults, err := updateDgfFiles(cfg, dataDir, outDir, ensure)
		if err != nil {
			return nil, err
		}
		for _, r := range dgfResults {
			record(r.Kind, r.Source, r.Output)
		}
	}

	if initsRel, ok := cfg[keyUserInits].(string); ok && initsRel != "" {
		src := filepath.Join(dataDir, initsRel)
		dst := filepath.Join(outDir, initsRel)
		if backup, err = ensure(dst); err != nil {
			return nil, err
		}
		if err := document.CopyFile(src, dst, backup); err != nil {
			return nil, err
		}
		record("user inits (copied)", src, dst)
	}

	return results, nil
}

// updateModelFile loads, migrates and writes the kinetic model, returning the
// migrated model for the priors rewrite.
func updateModelFile(src, out, backup string) (*kinetic.Model, error) {
	doc, err := document.LoadModel(src)
	if err != nil {
		return nil, err
	}
	migrated, err := migrate.NewRunner(migrate.Steps()).Run(doc)
	if err != nil {
		return nil, err
	}
	if err := document.WriteModel(migrated.Model, out, backup); err != nil {
		return nil, err
	}
	return migrated.Model, nil
}

func stringKey(cfg map[string]any, key, dataDir string) (string, error) {
	val, ok := cfg[key].(string)
	if !ok || val == "" {
		return "", migrate.NewError(migrate.KindUnrecognizedShape,
			filepath.Join(dataDir, ConfigFileName),
			fmt.Errorf("missing legacy key %q", key))
	}
	return val, nil
}
