package kinetic

import (
	"regexp"
	"strings"
)

// compartmentSuffix matches an identifier ending in a single-letter
// compartment tag, e.g. "g6p_c" or "atp_m".
var compartmentSuffix = regexp.MustCompile(`^(.*)_([a-z])$`)

// StripSeparators removes every separator from a legacy entity identifier:
// "old_enzyme" becomes "oldenzyme". Entity ids in the current schema are
// separator-free; the separator is reserved for composite keys.
func StripSeparators(id string) string {
	return strings.ReplaceAll(id, IDSeparator, "")
}

// StripKeepCompartment removes separators but preserves a trailing
// single-letter compartment tag: "glc__D_c" becomes "glcD_c". Stoichiometry
// keys address a metabolite inside a compartment, so the tag must survive.
func StripKeepCompartment(id string) string {
	if m := compartmentSuffix.FindStringSubmatch(id); m != nil {
		return strings.ReplaceAll(m[1], IDSeparator, "") + IDSeparator + m[2]
	}
	return strings.ReplaceAll(id, IDSeparator, "")
}

// SplitCompartment separates a legacy metabolite-in-compartment identifier
// into its metabolite part (separators stripped) and compartment tag.
// Identifiers without a compartment tag return an empty compartment.
func SplitCompartment(micID string) (metabolite, compartment string) {
	if m := compartmentSuffix.FindStringSubmatch(micID); m != nil {
		return strings.ReplaceAll(m[1], IDSeparator, ""), m[2]
	}
	return strings.ReplaceAll(micID, IDSeparator, ""), ""
}
