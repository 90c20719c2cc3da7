package migrate

import (
	"reflect"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/maudtools/maudup/internal/kinetic"
)

const legacyFixture = `
[[compartment]]
id = "c"
name = "cytosol"
volume = 1.0

[[metabolite-in-compartment]]
metabolite = "g6p"
name = "glucose-6-phosphate"
compartment = "c"
balanced = true
inchi_key = "NBSCHQHZLSJFNQ-GASJEMHNSA-N"

[[metabolite-in-compartment]]
metabolite = "f6p"
compartment = "c"
balanced = false

[[reaction]]
id = "PGI"
name = "glucose-6-phosphate isomerase"
mechanism = "reversible_modular_rate_law"
water_stoichiometry = 0.0
transported_charge = 0.0

[reaction.stoichiometry]
g6p_c = -1.0
f6p_c = 1.0

[[reaction.enzyme]]
id = "pgi_1"
name = "PGI enzyme"
subunits = 1

[[reaction.enzyme.modifier]]
modifier_type = "allosteric_inhibitor"
mic_id = "f6p_c"

[[reaction.enzyme.modifier]]
modifier_type = "competitive_inhibitor"
mic_id = "g6p_c"

[[drain]]
id = "sink_f6p"
name = "f6p sink"

[drain.stoichiometry]
f6p_c = -1.0
`

func legacyDoc(t *testing.T, payload string) Document {
	t.Helper()
	var legacy kinetic.LegacyModel
	if err := toml.Unmarshal([]byte(payload), &legacy); err != nil {
		t.Fatalf("decode legacy fixture: %v", err)
	}
	return Document{Path: "model.toml", Shape: kinetic.ShapeLegacyV1, Legacy: &legacy}
}

func TestRunMigratesLegacyFixture(t *testing.T) {
	out, err := NewRunner(Steps()).Run(legacyDoc(t, legacyFixture))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := &kinetic.Model{
		Compartment: []kinetic.Compartment{{ID: "c", Name: "cytosol", Volume: 1}},
		Reaction: []kinetic.Reaction{
			{
				ID:            "PGI",
				Name:          "glucose-6-phosphate isomerase",
				Mechanism:     kinetic.MechanismReversibleMichaelisMenten,
				Stoichiometry: map[string]float64{"g6p_c": -1, "f6p_c": 1},
			},
			{
				ID:            "sinkf6p",
				Name:          "f6p sink",
				Mechanism:     kinetic.MechanismDrain,
				Stoichiometry: map[string]float64{"f6p_c": -1},
			},
		},
		Enzyme:         []kinetic.Enzyme{{ID: "pgi1", Name: "PGI enzyme", Subunits: 1}},
		EnzymeReaction: []kinetic.EnzymeReaction{{EnzymeID: "pgi1", ReactionID: "PGI"}},
		Metabolite: []kinetic.Metabolite{
			{ID: "g6p", Name: "glucose-6-phosphate", InchiKey: "NBSCHQHZLSJFNQ-GASJEMHNSA-N"},
			{ID: "f6p"},
		},
		MetaboliteInCompartment: []kinetic.MetaboliteInCompartment{
			{MetaboliteID: "g6p", CompartmentID: "c", Balanced: true},
			{MetaboliteID: "f6p", CompartmentID: "c", Balanced: false},
		},
		Allostery: []kinetic.Allostery{{
			EnzymeID:         "pgi1",
			MetaboliteID:     "f6p",
			CompartmentID:    "c",
			ModificationType: kinetic.ModificationInhibition,
		}},
		CompetitiveInhibition: []kinetic.CompetitiveInhibition{{
			EnzymeID:      "pgi1",
			ReactionID:    "PGI",
			MetaboliteID:  "g6p",
			CompartmentID: "c",
		}},
	}
	if !reflect.DeepEqual(out.Model, want) {
		t.Fatalf("migrated model mismatch:\ngot  %+v\nwant %+v", out.Model, want)
	}
	if out.Shape != kinetic.ShapeCurrent {
		t.Fatalf("migrated shape = %s, want %s", out.Shape, kinetic.ShapeCurrent)
	}
}

func TestRunIsIdempotentOnCurrentShape(t *testing.T) {
	runner := NewRunner(Steps())
	once, err := runner.Run(legacyDoc(t, legacyFixture))
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	twice, err := runner.Run(once)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(once.Model, twice.Model) {
		t.Fatalf("second migration changed the document")
	}
}

func TestRunRejectsUnrecognizedShape(t *testing.T) {
	_, err := NewRunner(Steps()).Run(Document{Path: "weird.toml", Shape: kinetic.ShapeUnrecognized})
	if err == nil {
		t.Fatalf("expected failure")
	}
	if kind, ok := KindOf(err); !ok || kind != KindUnrecognizedShape {
		t.Fatalf("error kind = %v, want %v", kind, KindUnrecognizedShape)
	}
}

func TestRunRejectsUnknownModifierType(t *testing.T) {
	doc := legacyDoc(t, `
[[reaction]]
id = "PGI"

[reaction.stoichiometry]
g6p_c = -1.0

[[reaction.enzyme]]
id = "pgi_1"

[[reaction.enzyme.modifier]]
modifier_type = "mystery_modifier"
mic_id = "g6p_c"
`)
	_, err := NewRunner(Steps()).Run(doc)
	if err == nil {
		t.Fatalf("expected failure")
	}
	if kind, ok := KindOf(err); !ok || kind != KindStepApplicationFailure {
		t.Fatalf("error kind = %v, want %v", kind, KindStepApplicationFailure)
	}
}

func TestRunDefaultsMechanismAndSubunits(t *testing.T) {
	doc := legacyDoc(t, `
[[reaction]]
id = "PFK"
reaction_mechanism = "irreversible_modular_rate_law"

[reaction.stoichiometry]
f6p_c = -1.0

[[reaction.enzyme]]
id = "pfk"

[[reaction]]
id = "OLD"

[reaction.stoichiometry]
g6p_c = -1.0
`)
	out, err := NewRunner(Steps()).Run(doc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.Model.Reaction[0].Mechanism; got != kinetic.MechanismIrreversibleMichaelisMenten {
		t.Fatalf("reaction_mechanism spelling not honoured: %s", got)
	}
	// No mechanism key at all falls back to the historical reversible default.
	if got := out.Model.Reaction[1].Mechanism; got != kinetic.MechanismReversibleMichaelisMenten {
		t.Fatalf("default mechanism = %s, want reversible", got)
	}
	if got := out.Model.Enzyme[0].Subunits; got != 1 {
		t.Fatalf("default subunits = %d, want 1", got)
	}
}
