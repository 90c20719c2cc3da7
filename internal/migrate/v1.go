// internal/migrate/v1.go
//
// The evidenced schema edge: legacy documents keep enzymes nested inside
// their reaction tables and fuse metabolites with their compartment
// placement. The current schema wants flat entity tables joined by link
// tables, separator-free identifiers and named mechanism constants. This
// step performs that split.

package migrate

import "github.com/maudtools/maudup/internal/kinetic"

const stepV1Name = "v1-split-entity-tables"

func applyV1SplitEntityTables(doc Document) (Document, error) {
	old := doc.Legacy
	if old == nil {
		return Document{}, StepError(stepV1Name, doc.Path, "legacy document payload is missing")
	}

	model := &kinetic.Model{Compartment: old.Compartment}

	for _, reac := range old.Reaction {
		mechanism := kinetic.MechanismIrreversibleMichaelisMenten
		if reac.IsReversible() {
			mechanism = kinetic.MechanismReversibleMichaelisMenten
		}
		reacID := kinetic.StripSeparators(reac.ID)
		model.Reaction = append(model.Reaction, kinetic.Reaction{
			ID:                 reacID,
			Name:               reac.Name,
			Mechanism:          mechanism,
			Stoichiometry:      stripStoichiometryKeys(reac.Stoichiometry),
			WaterStoichiometry: reac.WaterStoichiometry,
			TransportedCharge:  reac.TransportedCharge,
		})
		for _, enz := range reac.Enzyme {
			enzID := kinetic.StripSeparators(enz.ID)
			subunits := enz.Subunits
			if subunits == 0 {
				subunits = 1 // historical default
			}
			model.Enzyme = append(model.Enzyme, kinetic.Enzyme{
				ID:       enzID,
				Name:     enz.Name,
				Subunits: subunits,
			})
			model.EnzymeReaction = append(model.EnzymeReaction, kinetic.EnzymeReaction{
				EnzymeID:   enzID,
				ReactionID: reacID,
			})
			for _, mod := range enz.Modifier {
				if err := convertModifier(model, doc.Path, enzID, reacID, mod); err != nil {
					return Document{}, err
				}
			}
		}
	}

	for _, drain := range old.Drain {
		model.Reaction = append(model.Reaction, kinetic.Reaction{
			ID:            kinetic.StripSeparators(drain.ID),
			Name:          drain.Name,
			Mechanism:     kinetic.MechanismDrain,
			Stoichiometry: stripStoichiometryKeys(drain.Stoichiometry),
		})
	}

	seen := map[string]bool{}
	for _, met := range old.Metabolites() {
		metID := kinetic.StripSeparators(met.EffectiveID())
		if !seen[metID] {
			seen[metID] = true
			model.Metabolite = append(model.Metabolite, kinetic.Metabolite{
				ID:       metID,
				Name:     met.Name,
				InchiKey: met.EffectiveInchiKey(),
			})
		}
		model.MetaboliteInCompartment = append(model.MetaboliteInCompartment, kinetic.MetaboliteInCompartment{
			MetaboliteID:  metID,
			CompartmentID: met.Compartment,
			Balanced:      met.Balanced,
		})
	}

	return Document{Path: doc.Path, Shape: kinetic.ShapeCurrent, Model: model}, nil
}

// convertModifier turns an inline enzyme modifier record into an allostery or
// competitive inhibition link. The modifier's mic id carries the compartment
// as a trailing single-letter suffix; records without a suffix fall back to
// the historical cytosol tag.
func convertModifier(model *kinetic.Model, path, enzID, reacID string, mod kinetic.LegacyModifier) error {
	metID, compID := kinetic.SplitCompartment(mod.MicID)
	if compID == "" {
		compID = "c"
	}
	switch mod.ModifierType {
	case kinetic.LegacyModifierCompetitiveInhibitor:
		model.CompetitiveInhibition = append(model.CompetitiveInhibition, kinetic.CompetitiveInhibition{
			EnzymeID:      enzID,
			ReactionID:    reacID,
			MetaboliteID:  metID,
			CompartmentID: compID,
		})
	case kinetic.LegacyModifierAllostericInhibitor:
		model.Allostery = append(model.Allostery, kinetic.Allostery{
			EnzymeID:         enzID,
			MetaboliteID:     metID,
			CompartmentID:    compID,
			ModificationType: kinetic.ModificationInhibition,
		})
	case kinetic.LegacyModifierAllostericActivator:
		model.Allostery = append(model.Allostery, kinetic.Allostery{
			EnzymeID:         enzID,
			MetaboliteID:     metID,
			CompartmentID:    compID,
			ModificationType: kinetic.ModificationActivation,
		})
	default:
		return StepError(stepV1Name, path, "enzyme %s: unknown modifier type %q", enzID, mod.ModifierType)
	}
	return nil
}

func stripStoichiometryKeys(stoich map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(stoich))
	for mic, coef := range stoich {
		out[kinetic.StripKeepCompartment(mic)] = coef
	}
	return out
}
