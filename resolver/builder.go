package resolver

import (
	"errors"
	"fmt"

	"github.com/drugdata/drugclass-api/drugparser/entities"
	"github.com/drugdata/drugclass-api/logging"
)

// ErrMissingReferenceData is returned when a required reference table is
// absent or empty at build start. The build never proceeds with partial
// reference data.
var ErrMissingReferenceData = errors.New("missing reference data")

// BuildStats summarizes one full build pass. The unmatched count is
// observational only; it feeds the post-build report and a metrics gauge
// and has no effect on the output table.
type BuildStats struct {
	Total     int
	Unmatched int
}

// UnmatchedFraction returns unmatched rows over total rows, 0 for an empty
// table.
func (s BuildStats) UnmatchedFraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Unmatched) / float64(s.Total)
}

// BuildDrugTable resolves every drug-name row into a ResolvedDrug: tokens
// from the generic then the brand name are matched against the registry,
// and the resulting RXCUI set is expanded into class codes and names. Rows
// are built fresh into a new slice; the inputs are never mutated. A name
// that resolves to nothing is not an error, it becomes a sentinel row and
// is counted.
func BuildDrugTable(names []entities.DrugName, reg *Registry, classes *ClassIndex) ([]entities.ResolvedDrug, BuildStats, error) {
	if err := checkReferenceData(reg, classes); err != nil {
		return nil, BuildStats{}, err
	}

	rows := make([]entities.ResolvedDrug, 0, len(names))
	stats := BuildStats{Total: len(names)}

	for _, name := range names {
		tokens := concatTokens(Tokens(name.Generic), Tokens(name.Brand))
		rxcuis := reg.Resolve(tokens)
		sets := classes.Aggregate(rxcuis)

		if len(rxcuis) == 1 && rxcuis[0] == NoMatchRxcui {
			stats.Unmatched++
		}

		rows = append(rows, entities.ResolvedDrug{
			Brand:           name.Brand,
			Generic:         name.Generic,
			Rxcuis:          rxcuis,
			MajorClasses:    sets.MajorClasses,
			MajorClassNames: sets.MajorClassNames,
			MinorClasses:    sets.MinorClasses,
			MinorClassNames: sets.MinorClassNames,
		})
	}

	logging.Info("Drug table build completed",
		"rows", stats.Total,
		"unmatched", stats.Unmatched,
		"unmatched_fraction", stats.UnmatchedFraction())

	return rows, stats, nil
}

func checkReferenceData(reg *Registry, classes *ClassIndex) error {
	if reg == nil || reg.Len() == 0 {
		return fmt.Errorf("%w: identifier registry", ErrMissingReferenceData)
	}
	if classes == nil || len(classes.profiles) == 0 {
		return fmt.Errorf("%w: drug profile table", ErrMissingReferenceData)
	}
	if len(classes.majorNames) == 0 {
		return fmt.Errorf("%w: major class descriptions", ErrMissingReferenceData)
	}
	if len(classes.minorNames) == 0 {
		return fmt.Errorf("%w: minor class descriptions", ErrMissingReferenceData)
	}
	return nil
}
