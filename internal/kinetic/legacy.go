// internal/kinetic/legacy.go
//
// Previous-generation schema for a kinetic model document. Legacy files nest
// enzyme records inside their reaction tables, keep metabolites and their
// compartment placements fused in a single "metabolite-in-compartment" table
// and carry no version marker; the shape has to be recognised structurally.

package kinetic

import "strings"

// Legacy mechanism strings. Anything starting with "reversible" maps to the
// reversible Michaelis-Menten rate law, every other known string to the
// irreversible one.
const legacyDefaultMechanism = "reversible_modular_rate_law"

// Legacy modifier type strings.
const (
	LegacyModifierCompetitiveInhibitor = "competitive_inhibitor"
	LegacyModifierAllostericInhibitor  = "allosteric_inhibitor"
	LegacyModifierAllostericActivator  = "allosteric_activator"
)

// LegacyModifier is an inline enzyme modifier record.
type LegacyModifier struct {
	ModifierType string `toml:"modifier_type"`
	MicID        string `toml:"mic_id"`
}

// LegacyEnzyme is an enzyme record nested inside a legacy reaction table.
type LegacyEnzyme struct {
	ID       string           `toml:"id"`
	Name     string           `toml:"name"`
	Subunits int              `toml:"subunits"`
	Modifier []LegacyModifier `toml:"modifier"`
}

// LegacyReaction is a reaction table in the previous schema. The mechanism
// key changed name between early releases, so both spellings are accepted,
// preferring the later "mechanism".
type LegacyReaction struct {
	ID                 string             `toml:"id"`
	Name               string             `toml:"name"`
	Mechanism          string             `toml:"mechanism"`
	ReactionMechanism  string             `toml:"reaction_mechanism"`
	Stoichiometry      map[string]float64 `toml:"stoichiometry"`
	Enzyme             []LegacyEnzyme     `toml:"enzyme"`
	WaterStoichiometry float64            `toml:"water_stoichiometry"`
	TransportedCharge  float64            `toml:"transported_charge"`
}

// MechanismString returns the effective legacy mechanism, applying the
// historical default when neither spelling is present.
func (r LegacyReaction) MechanismString() string {
	if r.Mechanism != "" {
		return r.Mechanism
	}
	if r.ReactionMechanism != "" {
		return r.ReactionMechanism
	}
	return legacyDefaultMechanism
}

// IsReversible reports whether the legacy mechanism string denotes a
// reversible rate law.
func (r LegacyReaction) IsReversible() bool {
	return strings.HasPrefix(r.MechanismString(), "reversible")
}

// LegacyMetabolite is a fused metabolite/compartment record. The identifier
// key was "metabolite", with "id" accepted as an alias; likewise the inchi
// key changed name between releases.
type LegacyMetabolite struct {
	MetaboliteID       string `toml:"metabolite"`
	AliasID            string `toml:"id"`
	Compartment        string `toml:"compartment"`
	Balanced           bool   `toml:"balanced"`
	Name               string `toml:"name"`
	InchiKey           string `toml:"inchi_key"`
	MetaboliteInchiKey string `toml:"metabolite_inchi_key"`
}

// EffectiveID returns the record identifier regardless of which key spelled it.
func (m LegacyMetabolite) EffectiveID() string {
	if m.MetaboliteID != "" {
		return m.MetaboliteID
	}
	return m.AliasID
}

// EffectiveInchiKey returns the inchi key regardless of which key spelled it.
func (m LegacyMetabolite) EffectiveInchiKey() string {
	if m.InchiKey != "" {
		return m.InchiKey
	}
	return m.MetaboliteInchiKey
}

// LegacyDrain is a fixed-flux boundary reaction in the previous schema. The
// current schema folds drains into the reaction table with the DRAIN
// mechanism.
type LegacyDrain struct {
	ID            string             `toml:"id"`
	Name          string             `toml:"name"`
	Stoichiometry map[string]float64 `toml:"stoichiometry"`
}

// LegacyModel is a complete previous-schema kinetic model document.
type LegacyModel struct {
	Compartment             []Compartment      `toml:"compartment"`
	Reaction                []LegacyReaction   `toml:"reaction"`
	MetaboliteInCompartment []LegacyMetabolite `toml:"metabolite-in-compartment"`
	Metabolite              []LegacyMetabolite `toml:"metabolite"`
	Drain                   []LegacyDrain      `toml:"drain"`
}

// Metabolites returns the fused metabolite records, preferring the canonical
// "metabolite-in-compartment" table over the "metabolite" alias.
func (m *LegacyModel) Metabolites() []LegacyMetabolite {
	if len(m.MetaboliteInCompartment) > 0 {
		return m.MetaboliteInCompartment
	}
	return m.Metabolite
}
