package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maudtools/maudup/internal/document"
	"github.com/maudtools/maudup/internal/migrate"
)

const fixtureConfig = `
kinetic_model = "model.toml"
priors = "priors.csv"
measurements = "measurements.csv"
biological_config = "bio_config.toml"
user_inits_file = "inits.csv"

[ode_config]
rel_tol_forward = 1e-9
abs_tol_forward = 1e-9
max_num_steps = 1000000
old_setting = true
`

const fixtureModel = `
[[compartment]]
id = "c"
name = "cytosol"
volume = 1.0

[[metabolite-in-compartment]]
metabolite = "g6p"
compartment = "c"
balanced = true

[[metabolite-in-compartment]]
metabolite = "f6p"
compartment = "c"
balanced = false

[[reaction]]
id = "PGI"
mechanism = "reversible_modular_rate_law"

[reaction.stoichiometry]
g6p_c = -1.0
f6p_c = 1.0

[[reaction.enzyme]]
id = "pgi_1"
subunits = 1
`

const fixturePriors = `parameter_type,enzyme_id,mic_id,experiment_id,drain_id,location,scale,pct1,pct99
kcat,pgi_1,,,,126,0.2,,
`

const fixtureMeasurements = `measurement_type,target_id,experiment_id,value
mic,g6p_c,condition_1,1.2
flux,old_reac,condition_1,0.4
`

const fixtureBioConfig = `
[[experiment]]
id = "condition_1"
sample = true
predict = false
`

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"config.toml":      fixtureConfig,
		"model.toml":       fixtureModel,
		"priors.csv":       fixturePriors,
		"measurements.csv": fixtureMeasurements,
		"bio_config.toml":  fixtureBioConfig,
		"inits.csv":        "a,b\n1,2\n",
	}
	for name, payload := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(payload), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestUpdateDirectory(t *testing.T) {
	dataDir := writeDataDir(t)
	outDir := filepath.Join(t.TempDir(), "out")

	results, err := Update(dataDir, outDir, Options{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d: %+v", len(results), results)
	}

	model, err := document.LoadModel(filepath.Join(outDir, "model.toml"))
	if err != nil {
		t.Fatalf("load migrated model: %v", err)
	}
	if len(model.Model.Enzyme) != 1 || model.Model.Enzyme[0].ID != "pgi1" {
		t.Fatalf("migrated model enzymes: %+v", model.Model.Enzyme)
	}

	priorsOut, err := os.ReadFile(filepath.Join(outDir, "priors.csv"))
	if err != nil {
		t.Fatalf("read priors: %v", err)
	}
	if !strings.HasPrefix(string(priorsOut), "parameter,metabolite,compartment,enzyme,reaction,experiment") {
		t.Fatalf("priors header: %q", priorsOut)
	}
	if !strings.Contains(string(priorsOut), "kcat,,,pgi1,PGI") {
		t.Fatalf("priors row not recoordinated: %q", priorsOut)
	}

	measurementsOut, err := os.ReadFile(filepath.Join(outDir, "measurements.csv"))
	if err != nil {
		t.Fatalf("read measurements: %v", err)
	}
	if !strings.Contains(string(measurementsOut), "flux,oldreac,condition1") {
		t.Fatalf("flux target not stripped: %q", measurementsOut)
	}
	if !strings.Contains(string(measurementsOut), "mic,g6p_c,condition1") {
		t.Fatalf("non-flux target must keep its id: %q", measurementsOut)
	}

	bio, err := document.LoadTree(filepath.Join(outDir, "bio_config.toml"))
	if err != nil {
		t.Fatalf("load experimental setup: %v", err)
	}
	experiments := tableArray(bio["experiment"])
	if len(experiments) != 1 {
		t.Fatalf("experiments: %+v", bio)
	}
	exp := experiments[0]
	if exp["id"] != "condition1" {
		t.Fatalf("experiment id = %v", exp["id"])
	}
	if exp["is_train"] != true || exp["is_test"] != false {
		t.Fatalf("train/test flags not renamed: %+v", exp)
	}
	if _, stale := exp["sample"]; stale {
		t.Fatalf("legacy sample key survived: %+v", exp)
	}

	cfg, err := document.LoadTree(filepath.Join(outDir, "config.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	for _, key := range []string{"kinetic_model_file", "priors_file", "measurements_file", "experimental_setup_file"} {
		if _, ok := cfg[key]; !ok {
			t.Fatalf("config missing renamed key %s: %+v", key, cfg)
		}
	}
	ode, ok := cfg["ode_config"].(map[string]any)
	if !ok {
		t.Fatalf("ode_config missing: %+v", cfg)
	}
	if _, ok := ode["rel_tol"]; !ok {
		t.Fatalf("ode rel_tol not renamed: %+v", ode)
	}
	if _, stale := ode["old_setting"]; stale {
		t.Fatalf("dropped ode key survived: %+v", ode)
	}

	inits, err := os.ReadFile(filepath.Join(outDir, "inits.csv"))
	if err != nil {
		t.Fatalf("read inits copy: %v", err)
	}
	if string(inits) != "a,b\n1,2\n" {
		t.Fatalf("inits copy = %q", inits)
	}
}

func TestUpdateGatesEveryDestination(t *testing.T) {
	dataDir := writeDataDir(t)
	outDir := t.TempDir()
	existing := filepath.Join(outDir, "model.toml")
	if err := os.WriteFile(existing, []byte("precious = true\n"), 0o644); err != nil {
		t.Fatalf("write existing output: %v", err)
	}

	opts := Options{EnsureWritable: func(path string) (string, error) {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists", path)
		}
		return "", nil
	}}
	_, err := Update(dataDir, outDir, opts)
	if err == nil {
		t.Fatalf("expected refusal for pre-existing output")
	}
	if !strings.Contains(err.Error(), "model.toml") {
		t.Fatalf("error %q does not name the colliding file", err)
	}
	data, readErr := os.ReadFile(existing)
	if readErr != nil {
		t.Fatalf("read existing output: %v", readErr)
	}
	if string(data) != "precious = true\n" {
		t.Fatalf("pre-existing output was replaced: %q", data)
	}
}

func TestUpdateBacksUpGrantedOverwrites(t *testing.T) {
	dataDir := writeDataDir(t)
	outDir := t.TempDir()
	existing := filepath.Join(outDir, "priors.csv")
	if err := os.WriteFile(existing, []byte("old,rows\n"), 0o644); err != nil {
		t.Fatalf("write existing output: %v", err)
	}

	opts := Options{EnsureWritable: func(path string) (string, error) {
		if _, err := os.Stat(path); err == nil {
			return ".bak", nil
		}
		return "", nil
	}}
	if _, err := Update(dataDir, outDir, opts); err != nil {
		t.Fatalf("update: %v", err)
	}
	backup, err := os.ReadFile(existing + ".bak")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != "old,rows\n" {
		t.Fatalf("backup content = %q", backup)
	}
}

func TestUpdateMissingDirectory(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	_, err := Update(filepath.Join(t.TempDir(), "nope"), outDir, Options{})
	if err == nil {
		t.Fatalf("expected failure")
	}
	if kind, ok := migrate.KindOf(err); !ok || kind != migrate.KindInputNotFound {
		t.Fatalf("error kind = %v, want input not found", kind)
	}
	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Fatalf("failed update created the output directory")
	}
}

func TestUpdateConfigTree(t *testing.T) {
	tree := map[string]any{
		"kinetic_model": "model.toml",
		"priors":        "priors.csv",
		"ode_config": map[string]any{
			"rel_tol_forward": 1e-9,
			"timepoint":       500.0,
			"legacy_knob":     true,
		},
	}
	out := UpdateConfigTree(tree)
	if out["kinetic_model_file"] != "model.toml" || out["priors_file"] != "priors.csv" {
		t.Fatalf("file keys not renamed: %+v", out)
	}
	ode := out["ode_config"].(map[string]any)
	if ode["rel_tol"] != 1e-9 {
		t.Fatalf("rel_tol not renamed: %+v", ode)
	}
	if ode["timepoint"] != 500.0 {
		t.Fatalf("allowed key dropped: %+v", ode)
	}
	if _, stale := ode["legacy_knob"]; stale {
		t.Fatalf("disallowed key survived: %+v", ode)
	}
}
