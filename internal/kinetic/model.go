// internal/kinetic/model.go
//
// Current-generation schema for a Maud kinetic model document. The types
// mirror the tables of the kinetic model TOML file: flat entity tables
// (compartment, metabolite, enzyme, reaction) plus link tables that tie
// entities together (enzyme_reaction, metabolite_in_compartment, ...).
//
// The Validate methods are the authoritative acceptance check for migration
// output: a migrated document must pass Model.Validate before it is written.

package kinetic

import (
	"fmt"
	"strings"
)

// IDSeparator is forbidden inside identifiers in the current schema. It is
// reserved for joining identifiers together (e.g. enzyme_metabolite keys in
// priors files).
const IDSeparator = "_"

// ReactionMechanism enumerates the rate laws a reaction can follow.
type ReactionMechanism string

const (
	MechanismReversibleMichaelisMenten   ReactionMechanism = "REVERSIBLE_MICHAELIS_MENTEN"
	MechanismIrreversibleMichaelisMenten ReactionMechanism = "IRREVERSIBLE_MICHAELIS_MENTEN"
	MechanismDrain                       ReactionMechanism = "DRAIN"
)

// Valid reports whether the mechanism is one of the known rate laws.
func (m ReactionMechanism) Valid() bool {
	switch m {
	case MechanismReversibleMichaelisMenten, MechanismIrreversibleMichaelisMenten, MechanismDrain:
		return true
	}
	return false
}

// ModificationType enumerates allosteric modification directions.
type ModificationType string

const (
	ModificationActivation ModificationType = "ACTIVATION"
	ModificationInhibition ModificationType = "INHIBITION"
)

// Valid reports whether the modification type is known.
func (m ModificationType) Valid() bool {
	return m == ModificationActivation || m == ModificationInhibition
}

// Compartment is an intra-cellular compartment, for example cytosol or
// mitochondria. The volume is relative to the external volume.
type Compartment struct {
	ID     string  `toml:"id"`
	Name   string  `toml:"name,omitempty"`
	Volume float64 `toml:"volume"`
}

// Validate checks the compartment identifier.
func (c Compartment) Validate() error {
	return checkID("compartment", c.ID)
}

// Metabolite is a chemical species independent of location.
type Metabolite struct {
	ID       string `toml:"id"`
	Name     string `toml:"name,omitempty"`
	InchiKey string `toml:"inchi_key,omitempty"`
}

// Validate checks the metabolite identifier.
func (m Metabolite) Validate() error {
	return checkID("metabolite", m.ID)
}

// MetaboliteInCompartment places a metabolite inside a compartment. The same
// metabolite can appear in several compartments with different balanced
// status: balanced means the species is neither produced nor consumed at
// steady state.
type MetaboliteInCompartment struct {
	MetaboliteID  string `toml:"metabolite_id"`
	CompartmentID string `toml:"compartment_id"`
	Balanced      bool   `toml:"balanced"`
}

// Validate checks both referenced identifiers.
func (m MetaboliteInCompartment) Validate() error {
	if err := checkID("metabolite_in_compartment.metabolite_id", m.MetaboliteID); err != nil {
		return err
	}
	return checkID("metabolite_in_compartment.compartment_id", m.CompartmentID)
}

// Enzyme is a catalyst. Subunits is the number of subunits in the quaternary
// structure and must be positive.
type Enzyme struct {
	ID       string `toml:"id"`
	Name     string `toml:"name,omitempty"`
	Subunits int    `toml:"subunits"`
}

// Validate checks the identifier and the subunit count.
func (e Enzyme) Validate() error {
	if err := checkID("enzyme", e.ID); err != nil {
		return err
	}
	if e.Subunits <= 0 {
		return fmt.Errorf("kinetic: enzyme %s: subunits must be positive, got %d", e.ID, e.Subunits)
	}
	return nil
}

// EnzymeReaction links an enzyme to a reaction it catalyses. A separate link
// table is needed because some enzymes catalyse multiple reactions.
type EnzymeReaction struct {
	EnzymeID   string `toml:"enzyme_id"`
	ReactionID string `toml:"reaction_id"`
}

// Validate checks both referenced identifiers.
func (e EnzymeReaction) Validate() error {
	if err := checkID("enzyme_reaction.enzyme_id", e.EnzymeID); err != nil {
		return err
	}
	return checkID("enzyme_reaction.reaction_id", e.ReactionID)
}

// Reaction is a chemical reaction. Stoichiometry maps metabolite-in-compartment
// identifiers (with their trailing compartment suffix) to coefficients.
type Reaction struct {
	ID                 string             `toml:"id"`
	Name               string             `toml:"name,omitempty"`
	Mechanism          ReactionMechanism  `toml:"mechanism"`
	Stoichiometry      map[string]float64 `toml:"stoichiometry"`
	WaterStoichiometry float64            `toml:"water_stoichiometry"`
	TransportedCharge  float64            `toml:"transported_charge"`
}

// Validate checks the identifier, mechanism and stoichiometry.
func (r Reaction) Validate() error {
	if err := checkID("reaction", r.ID); err != nil {
		return err
	}
	if !r.Mechanism.Valid() {
		return fmt.Errorf("kinetic: reaction %s: unknown mechanism %q", r.ID, r.Mechanism)
	}
	if len(r.Stoichiometry) == 0 {
		return fmt.Errorf("kinetic: reaction %s: stoichiometry must not be empty", r.ID)
	}
	return nil
}

// Allostery is an allosteric modification of an enzyme by a metabolite in a
// compartment.
type Allostery struct {
	EnzymeID         string           `toml:"enzyme_id"`
	MetaboliteID     string           `toml:"metabolite_id"`
	CompartmentID    string           `toml:"compartment_id"`
	ModificationType ModificationType `toml:"modification_type"`
}

// Validate checks referenced identifiers and the modification type.
func (a Allostery) Validate() error {
	if err := checkID("allostery.enzyme_id", a.EnzymeID); err != nil {
		return err
	}
	if err := checkID("allostery.metabolite_id", a.MetaboliteID); err != nil {
		return err
	}
	if !a.ModificationType.Valid() {
		return fmt.Errorf("kinetic: allostery for enzyme %s: unknown modification type %q", a.EnzymeID, a.ModificationType)
	}
	return nil
}

// CompetitiveInhibition is a competitive inhibition of an enzyme-reaction pair
// by a metabolite in a compartment.
type CompetitiveInhibition struct {
	EnzymeID      string `toml:"enzyme_id"`
	ReactionID    string `toml:"reaction_id"`
	MetaboliteID  string `toml:"metabolite_id"`
	CompartmentID string `toml:"compartment_id"`
}

// Validate checks the referenced identifiers.
func (c CompetitiveInhibition) Validate() error {
	if err := checkID("competitive_inhibition.enzyme_id", c.EnzymeID); err != nil {
		return err
	}
	if err := checkID("competitive_inhibition.reaction_id", c.ReactionID); err != nil {
		return err
	}
	return checkID("competitive_inhibition.metabolite_id", c.MetaboliteID)
}

// Phosphorylation is a phosphorylation modification of an enzyme.
type Phosphorylation struct {
	EnzymeID         string           `toml:"enzyme_id"`
	ModificationType ModificationType `toml:"modification_type"`
}

// Validate checks the enzyme identifier and the modification type.
func (p Phosphorylation) Validate() error {
	if err := checkID("phosphorylation.enzyme_id", p.EnzymeID); err != nil {
		return err
	}
	if !p.ModificationType.Valid() {
		return fmt.Errorf("kinetic: phosphorylation of enzyme %s: unknown modification type %q", p.EnzymeID, p.ModificationType)
	}
	return nil
}

// Model is a complete current-schema kinetic model document. Field order
// matches the table order of files written by the updater.
type Model struct {
	Compartment             []Compartment             `toml:"compartment"`
	Reaction                []Reaction                `toml:"reaction"`
	Enzyme                  []Enzyme                  `toml:"enzyme"`
	EnzymeReaction          []EnzymeReaction          `toml:"enzyme_reaction"`
	Metabolite              []Metabolite              `toml:"metabolite"`
	MetaboliteInCompartment []MetaboliteInCompartment `toml:"metabolite_in_compartment"`
	Allostery               []Allostery               `toml:"allostery,omitempty"`
	CompetitiveInhibition   []CompetitiveInhibition   `toml:"competitive_inhibition,omitempty"`
	Phosphorylation         []Phosphorylation         `toml:"phosphorylation,omitempty"`
}

// Validate checks every record in the model against the current schema.
func (m *Model) Validate() error {
	for _, c := range m.Compartment {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, r := range m.Reaction {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	for _, e := range m.Enzyme {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, er := range m.EnzymeReaction {
		if err := er.Validate(); err != nil {
			return err
		}
	}
	for _, met := range m.Metabolite {
		if err := met.Validate(); err != nil {
			return err
		}
	}
	for _, mic := range m.MetaboliteInCompartment {
		if err := mic.Validate(); err != nil {
			return err
		}
	}
	for _, a := range m.Allostery {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, ci := range m.CompetitiveInhibition {
		if err := ci.Validate(); err != nil {
			return err
		}
	}
	for _, p := range m.Phosphorylation {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ReactionForEnzyme returns the reaction id linked to the given enzyme id.
// Historical models had no promiscuous enzymes, so the first link wins.
func (m *Model) ReactionForEnzyme(enzymeID string) (string, bool) {
	id := StripSeparators(enzymeID)
	for _, er := range m.EnzymeReaction {
		if er.EnzymeID == id {
			return er.ReactionID, true
		}
	}
	return "", false
}

// HasEnzyme reports whether the given enzyme id (legacy or current spelling)
// is linked to any reaction in the model.
func (m *Model) HasEnzyme(enzymeID string) bool {
	_, ok := m.ReactionForEnzyme(enzymeID)
	return ok
}

func checkID(field, id string) error {
	if id == "" {
		return fmt.Errorf("kinetic: %s: id is required", field)
	}
	if strings.Contains(id, IDSeparator) {
		return fmt.Errorf("kinetic: %s: id %q must not contain %q", field, id, IDSeparator)
	}
	return nil
}
