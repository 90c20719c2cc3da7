// internal/priors/priors.go
//
// Rewrites a legacy priors CSV against an already-migrated kinetic model.
// The legacy layout addressed parameters through entity-specific id columns
// (enzyme_id, mic_id, drain_id); the current layout uses one column per
// coordinate (metabolite, compartment, enzyme, reaction, experiment). The
// model is needed to recover the reaction coordinate for kcat and ki rows,
// which legacy files left implicit because enzymes were never promiscuous.

package priors

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/maudtools/maudup/internal/document"
	"github.com/maudtools/maudup/internal/kinetic"
	"github.com/maudtools/maudup/internal/migrate"
)

const stepName = "priors-recoordinate"

// Columns is the current priors layout, in output order.
var Columns = []string{
	"parameter",
	"metabolite",
	"compartment",
	"enzyme",
	"reaction",
	"experiment",
	"location",
	"scale",
	"pct1",
	"pct99",
}

// legacy column -> current column renames.
var renames = map[string]string{
	"parameter_type": "parameter",
	"enzyme_id":      "enzyme",
	"experiment_id":  "experiment",
	"mic_id":         "metabolite",
	"drain_id":       "reaction",
}

// parameter value renames.
var parameterRenames = map[string]string{
	"diss_t": "dissociation_constant",
}

// Row is one priors record keyed by current column name.
type Row map[string]string

// Update transforms parsed legacy rows into current-layout rows. The input
// must include the header row; the output does too.
func Update(records [][]string, model *kinetic.Model, path string) ([][]string, error) {
	if len(records) == 0 {
		return nil, migrate.StepError(stepName, path, "priors file is empty")
	}
	header := records[0]
	if err := checkColumns(header, path); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := Row{}
		for i, col := range header {
			if i >= len(rec) {
				break
			}
			name := col
			if renamed, ok := renames[col]; ok {
				name = renamed
			}
			row[name] = rec[i]
		}
		if row["parameter"] == "conc_phos" {
			// The phosphorylation layout of the current schema is
			// unconfirmed upstream; refusing beats guessing.
			return nil, migrate.StepError(stepName, path, "conc_phos priors cannot be migrated yet")
		}
		rows = append(rows, row)
	}

	var out []Row
	for _, row := range rows {
		if mic := row["metabolite"]; mic != "" {
			met, comp := kinetic.SplitCompartment(mic)
			row["metabolite"] = met
			row["compartment"] = comp
		}
		row["enzyme"] = kinetic.StripSeparators(row["enzyme"])
		row["experiment"] = kinetic.StripSeparators(row["experiment"])
		// Drain ids became reaction ids during the model update, with the
		// same separator stripping.
		row["reaction"] = kinetic.StripSeparators(row["reaction"])
		if renamed, ok := parameterRenames[row["parameter"]]; ok {
			row["parameter"] = renamed
		}

		param := row["parameter"]
		// Enzymes can disappear during the model update; their kcat and
		// concentration priors go with them.
		if (param == "kcat" || param == "conc_enzyme") && !model.HasEnzyme(row["enzyme"]) {
			continue
		}
		if param == "kcat" || param == "ki" {
			reaction, ok := model.ReactionForEnzyme(row["enzyme"])
			if !ok {
				return nil, migrate.StepError(stepName, path, "%s prior: enzyme %s is not linked to any reaction", param, row["enzyme"])
			}
			row["reaction"] = reaction
		}
		out = append(out, row)
	}

	result := [][]string{append([]string(nil), Columns...)}
	for _, row := range out {
		rec := make([]string, len(Columns))
		for i, col := range Columns {
			rec[i] = row[col]
		}
		result = append(result, rec)
	}
	return result, nil
}

// UpdateFile reads a legacy priors CSV, rewrites it against the model and
// atomically writes the result.
func UpdateFile(oldPath, outPath string, model *kinetic.Model, backup string) error {
	records, err := ReadCSV(oldPath)
	if err != nil {
		return err
	}
	updated, err := Update(records, model, oldPath)
	if err != nil {
		return err
	}
	return WriteCSV(updated, outPath, backup)
}

// ReadCSV loads a whole CSV file, mapping I/O and parse failures onto the
// pipeline's tagged error kinds.
func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, migrate.NewError(migrate.KindInputNotFound, path, err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged legacy files exist
	records, err := reader.ReadAll()
	if err != nil {
		return nil, migrate.NewError(migrate.KindUnparseableDocument, path, err)
	}
	return records, nil
}

// WriteCSV atomically writes CSV records.
func WriteCSV(records [][]string, path string, backup string) error {
	return document.WriteAtomic(path, backup, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.WriteAll(records); err != nil {
			return err
		}
		writer.Flush()
		return writer.Error()
	})
}

func checkColumns(header []string, path string) error {
	required := []string{"parameter_type", "location", "scale"}
	have := map[string]bool{}
	for _, col := range header {
		have[col] = true
	}
	for _, col := range required {
		if !have[col] {
			return migrate.StepError(stepName, path, "missing column %s", col)
		}
	}
	return nil
}
