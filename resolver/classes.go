package resolver

import (
	"github.com/drugdata/drugclass-api/drugparser/entities"
)

// NoMatchClass is the reserved value for class code and description columns
// when an identifier set yields no classification rows. Same non-empty-set
// policy as NoMatchRxcui.
const NoMatchClass = "0"

// ClassIndex holds the profile table and both class-description tables,
// indexed for aggregation.
type ClassIndex struct {
	profiles   map[string][]entities.ProfileEntry
	majorNames map[string]string
	minorNames map[string]string
}

// NewClassIndex indexes profile rows by RXCUI and the description tables by
// class code. Duplicate profile rows are kept as-is; uniqueness is applied
// on the class-code columns during aggregation, not on rows.
func NewClassIndex(profiles []entities.ProfileEntry, majors, minors []entities.ClassDescription) *ClassIndex {
	ix := &ClassIndex{
		profiles:   make(map[string][]entities.ProfileEntry),
		majorNames: make(map[string]string, len(majors)),
		minorNames: make(map[string]string, len(minors)),
	}
	for _, p := range profiles {
		ix.profiles[p.Rxcui] = append(ix.profiles[p.Rxcui], p)
	}
	for _, d := range majors {
		ix.majorNames[d.Code] = d.Description
	}
	for _, d := range minors {
		ix.minorNames[d.Code] = d.Description
	}
	return ix
}

// ClassSets are the four deduplicated outputs of class aggregation. Each
// slice holds at least one element; empty aggregations collapse to the
// NoMatchClass sentinel.
type ClassSets struct {
	MajorClasses    []string
	MajorClassNames []string
	MinorClasses    []string
	MinorClassNames []string
}

// Aggregate unions major and minor class codes across every profile row of
// every identifier in the set, then resolves each unique code to its
// description. The NoMatchRxcui sentinel is skipped. A code missing from a
// description table contributes nothing; it is expected, not a fault.
// Output order is first-seen union order, never sorted.
func (ix *ClassIndex) Aggregate(rxcuis []string) ClassSets {
	var majorCodes, minorCodes []string
	majorSeen := make(map[string]struct{})
	minorSeen := make(map[string]struct{})

	for _, rxcui := range rxcuis {
		if rxcui == NoMatchRxcui {
			continue
		}
		for _, p := range ix.profiles[rxcui] {
			if p.MajorClass != "" {
				if _, dup := majorSeen[p.MajorClass]; !dup {
					majorSeen[p.MajorClass] = struct{}{}
					majorCodes = append(majorCodes, p.MajorClass)
				}
			}
			if p.MinorClass != "" {
				if _, dup := minorSeen[p.MinorClass]; !dup {
					minorSeen[p.MinorClass] = struct{}{}
					minorCodes = append(minorCodes, p.MinorClass)
				}
			}
		}
	}

	return ClassSets{
		MajorClasses:    orSentinel(majorCodes),
		MajorClassNames: orSentinel(describe(majorCodes, ix.majorNames)),
		MinorClasses:    orSentinel(minorCodes),
		MinorClassNames: orSentinel(describe(minorCodes, ix.minorNames)),
	}
}

// describe maps class codes to their descriptions in code order, dropping
// absent codes and deduplicating descriptions shared by several codes.
func describe(codes []string, names map[string]string) []string {
	var descriptions []string
	seen := make(map[string]struct{})
	for _, code := range codes {
		desc, ok := names[code]
		if !ok || desc == "" {
			continue
		}
		if _, dup := seen[desc]; dup {
			continue
		}
		seen[desc] = struct{}{}
		descriptions = append(descriptions, desc)
	}
	return descriptions
}

func orSentinel(set []string) []string {
	if len(set) == 0 {
		return []string{NoMatchClass}
	}
	return set
}
