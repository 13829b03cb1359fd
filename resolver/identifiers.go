package resolver

import (
	"iter"

	"github.com/drugdata/drugclass-api/drugparser/entities"
)

// NoMatchRxcui is the reserved identifier written when a name resolves to
// nothing. The identifier column must always hold at least one value, so
// "no match" is a single-element set rather than an empty one.
const NoMatchRxcui = "0.0"

// Registry indexes the RxNorm name registry for exact lookups. Display
// names are not unique: the same name can map to several RXCUIs, and every
// one of them is a match.
type Registry struct {
	byName map[string][]string
	size   int
}

// NewRegistry builds the lookup index from registry rows, preserving file
// order within each display name.
func NewRegistry(entries []entities.RegistryEntry) *Registry {
	byName := make(map[string][]string, len(entries))
	for _, e := range entries {
		byName[e.Name] = append(byName[e.Name], e.Rxcui)
	}
	return &Registry{byName: byName, size: len(entries)}
}

// Len returns the number of registry rows the index was built from.
func (r *Registry) Len() int {
	return r.size
}

// Resolve returns the RXCUIs whose registry display name exactly equals any
// of the candidate tokens. Matches are unioned across all tokens and
// deduplicated by identifier, keeping first-seen order so repeated builds
// produce identical output. No match at all yields {NoMatchRxcui}.
func (r *Registry) Resolve(tokens iter.Seq[string]) []string {
	var rxcuis []string
	seen := make(map[string]struct{})

	for tok := range tokens {
		for _, rxcui := range r.byName[tok] {
			if _, dup := seen[rxcui]; dup {
				continue
			}
			seen[rxcui] = struct{}{}
			rxcuis = append(rxcuis, rxcui)
		}
	}

	if len(rxcuis) == 0 {
		return []string{NoMatchRxcui}
	}
	return rxcuis
}
