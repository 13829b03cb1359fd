// Package validation provides data validation for the drugclass API.
package validation

import (
	"fmt"
	"strings"

	"github.com/drugdata/drugclass-api/drugparser/entities"
	"github.com/drugdata/drugclass-api/resolver"
)

// DataQualityReport summarizes issues found in a freshly built dataset.
// Everything in it is observational; a report never fails a build.
type DataQualityReport struct {
	TotalRows           int
	UnmatchedRows       int      // identifier column is the no-match sentinel
	UnclassifiedRows    int      // identifier resolved but no profile rows matched
	DuplicateNamePairs  []string // brand/generic pairs appearing more than once
	MultiIdentifierRows int      // rows that resolved to more than one RXCUI
}

// DataValidator validates handler input and built datasets
type DataValidator struct{}

// NewDataValidator creates a new DataValidator instance
func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

// ValidateInput validates a user-supplied drug name query. The table only
// holds printable names well under this limit; anything else is garbage in.
func (v *DataValidator) ValidateInput(input string) error {
	if input == "" {
		return fmt.Errorf("input cannot be empty")
	}
	if len(input) > 200 {
		return fmt.Errorf("input too long: %d characters", len(input))
	}
	for _, r := range input {
		if r < 32 || r == 127 {
			return fmt.Errorf("input contains control characters")
		}
	}
	return nil
}

// ReportDataQuality inspects the enriched table and reports anything a
// data consumer would want to know about.
func (v *DataValidator) ReportDataQuality(drugs []entities.ResolvedDrug) *DataQualityReport {
	report := &DataQualityReport{TotalRows: len(drugs)}

	seen := make(map[string]int, len(drugs))

	for i := range drugs {
		d := &drugs[i]

		unmatched := len(d.Rxcuis) == 1 && d.Rxcuis[0] == resolver.NoMatchRxcui
		if unmatched {
			report.UnmatchedRows++
		}

		if !unmatched && len(d.MajorClasses) == 1 && d.MajorClasses[0] == resolver.NoMatchClass &&
			len(d.MinorClasses) == 1 && d.MinorClasses[0] == resolver.NoMatchClass {
			report.UnclassifiedRows++
		}

		if len(d.Rxcuis) > 1 {
			report.MultiIdentifierRows++
		}

		key := strings.ToLower(d.Brand) + "\x00" + strings.ToLower(d.Generic)
		seen[key]++
		if seen[key] == 2 {
			report.DuplicateNamePairs = append(report.DuplicateNamePairs, d.Brand+"/"+d.Generic)
		}
	}

	return report
}
