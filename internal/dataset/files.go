// internal/dataset/files.go
//
// The per-file rewrites that accompany a kinetic model update: measurements
// and dgf CSVs only need identifier separators stripped, the experimental
// setup and main config TOML only need key renames. All writes go through
// the atomic writer.

package dataset

import (
	"path/filepath"

	"github.com/maudtools/maudup/internal/document"
	"github.com/maudtools/maudup/internal/kinetic"
	"github.com/maudtools/maudup/internal/migrate"
	"github.com/maudtools/maudup/internal/priors"
)

// Legacy config.toml key -> current key.
var configKeyRenames = map[string]string{
	"priors":            "priors_file",
	"measurements":      "measurements_file",
	"biological_config": "experimental_setup_file",
	"kinetic_model":     "kinetic_model_file",
}

// Legacy ode_config key -> current key.
var odeKeyRenames = map[string]string{
	"rel_tol_forward": "rel_tol",
	"abs_tol_forward": "abs_tol",
}

// Keys the current ODE configuration accepts; everything else was dropped
// from the schema and is discarded on update.
var allowedODEKeys = map[string]bool{
	"rel_tol":       true,
	"abs_tol":       true,
	"max_num_steps": true,
	"timepoint":     true,
}

// Legacy experiment record key -> current key.
var experimentKeyRenames = map[string]string{
	"sample":  "is_train",
	"predict": "is_test",
}

// UpdateConfigTree rewrites a legacy config.toml tree in memory: file keys
// get their _file suffix and the ODE block is renamed and trimmed to the
// keys the current schema knows.
func UpdateConfigTree(cfg map[string]any) map[string]any {
	out := renameKeys(cfg, configKeyRenames)
	if ode, ok := out["ode_config"].(map[string]any); ok {
		renamed := renameKeys(ode, odeKeyRenames)
		trimmed := map[string]any{}
		for k, v := range renamed {
			if allowedODEKeys[k] {
				trimmed[k] = v
			}
		}
		out["ode_config"] = trimmed
	}
	return out
}

// UpdateExperimentalSetupFile strips separators from experiment identifiers
// and renames the train/test flags.
func UpdateExperimentalSetupFile(src, out, backup string) error {
	tree, err := document.LoadTree(src)
	if err != nil {
		return err
	}
	experiments := tableArray(tree["experiment"])
	if experiments == nil {
		return migrate.NewError(migrate.KindUnrecognizedShape, src, nil)
	}
	updated := make([]map[string]any, 0, len(experiments))
	for _, exp := range experiments {
		if id, ok := exp["id"].(string); ok {
			exp["id"] = kinetic.StripSeparators(id)
		}
		updated = append(updated, renameKeys(exp, experimentKeyRenames))
	}
	tree["experiment"] = updated
	return document.WriteTree(tree, out, backup)
}

// UpdateMeasurementsFile strips separators from experiment ids and, for flux
// measurements, from the target reaction ids.
func UpdateMeasurementsFile(src, out, backup string) error {
	records, err := priors.ReadCSV(src)
	if err != nil {
		return err
	}
	updated, err := mapColumns(records, src, func(row map[string]int, rec []string) {
		stripColumn(rec, row, "experiment_id")
		if i, ok := row["measurement_type"]; ok && i < len(rec) && rec[i] == "flux" {
			stripColumn(rec, row, "target_id")
		}
	})
	if err != nil {
		return err
	}
	return priors.WriteCSV(updated, out, backup)
}

// updateDgfFiles strips separators from the metabolite identifiers of the
// formation-energy mean and covariance files. The covariance file addresses
// metabolites in its column headers too.
func updateDgfFiles(cfg map[string]any, dataDir, outDir string, ensure func(string) (string, error)) ([]Result, error) {
	meanRel, err := stringKey(cfg, keyDgfMean, dataDir)
	if err != nil {
		return nil, err
	}
	covRel, err := stringKey(cfg, keyDgfCov, dataDir)
	if err != nil {
		return nil, err
	}

	meanSrc := filepath.Join(dataDir, meanRel)
	meanOut := filepath.Join(outDir, meanRel)
	records, err := priors.ReadCSV(meanSrc)
	if err != nil {
		return nil, err
	}
	updated, err := mapColumns(records, meanSrc, func(row map[string]int, rec []string) {
		stripColumn(rec, row, "metabolite")
	})
	if err != nil {
		return nil, err
	}
	backup, err := ensure(meanOut)
	if err != nil {
		return nil, err
	}
	if err := priors.WriteCSV(updated, meanOut, backup); err != nil {
		return nil, err
	}

	covSrc := filepath.Join(dataDir, covRel)
	covOut := filepath.Join(outDir, covRel)
	cov, err := priors.ReadCSV(covSrc)
	if err != nil {
		return nil, err
	}
	if len(cov) > 0 {
		header := cov[0]
		for i, col := range header {
			if col != "metabolite" {
				header[i] = kinetic.StripSeparators(col)
			}
		}
	}
	updatedCov, err := mapColumns(cov, covSrc, func(row map[string]int, rec []string) {
		stripColumn(rec, row, "metabolite")
	})
	if err != nil {
		return nil, err
	}
	if backup, err = ensure(covOut); err != nil {
		return nil, err
	}
	if err := priors.WriteCSV(updatedCov, covOut, backup); err != nil {
		return nil, err
	}

	return []Result{
		{Kind: "dgf means", Source: meanSrc, Output: meanOut},
		{Kind: "dgf covariance", Source: covSrc, Output: covOut},
	}, nil
}

// mapColumns applies fn to every data row of a header-led CSV record set.
func mapColumns(records [][]string, path string, fn func(cols map[string]int, rec []string)) ([][]string, error) {
	if len(records) == 0 {
		return nil, migrate.NewError(migrate.KindUnrecognizedShape, path, nil)
	}
	cols := map[string]int{}
	for i, name := range records[0] {
		cols[name] = i
	}
	for _, rec := range records[1:] {
		fn(cols, rec)
	}
	return records, nil
}

func stripColumn(rec []string, cols map[string]int, name string) {
	if i, ok := cols[name]; ok && i < len(rec) {
		rec[i] = kinetic.StripSeparators(rec[i])
	}
}

// tableArray normalizes the decoder's two representations of arrays of tables.
func tableArray(v any) []map[string]any {
	switch arr := v.(type) {
	case []map[string]any:
		return arr
	case []any:
		tables := make([]map[string]any, 0, len(arr))
		for _, elem := range arr {
			table, ok := elem.(map[string]any)
			if !ok {
				return nil
			}
			tables = append(tables, table)
		}
		return tables
	default:
		return nil
	}
}

func renameKeys(m map[string]any, keyMap map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if renamed, ok := keyMap[k]; ok {
			k = renamed
		}
		out[k] = v
	}
	return out
}
