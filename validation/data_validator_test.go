package validation

import (
	"strings"
	"testing"

	"github.com/drugdata/drugclass-api/drugparser/entities"
)

func TestValidateInput(t *testing.T) {
	v := NewDataValidator()

	for _, input := range []string{"aspirin", "Bayer Aspirin", "drugx/drugy", "abilify 10mg"} {
		if err := v.ValidateInput(input); err != nil {
			t.Errorf("ValidateInput(%q) = %v, want nil", input, err)
		}
	}

	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("a", 201)},
		{"newline", "aspirin\nDROP TABLE"},
		{"null byte", "aspirin\x00"},
		{"delete char", "aspirin\x7f"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := v.ValidateInput(tc.input); err == nil {
				t.Errorf("ValidateInput(%q) = nil, want error", tc.input)
			}
		})
	}
}

func TestReportDataQuality(t *testing.T) {
	drugs := []entities.ResolvedDrug{
		{
			Brand: "Bayer Aspirin", Generic: "aspirin",
			Rxcuis:       []string{"100"},
			MajorClasses: []string{"M1"}, MinorClasses: []string{"C1"},
		},
		{
			Brand: "Unknownium", Generic: "unknownium",
			Rxcuis:       []string{"0.0"},
			MajorClasses: []string{"0"}, MinorClasses: []string{"0"},
		},
		{
			// Resolved but no classification rows
			Brand: "DrugY", Generic: "drugy",
			Rxcuis:       []string{"200"},
			MajorClasses: []string{"0"}, MinorClasses: []string{"0"},
		},
		{
			// Two identifiers from a duplicated display name
			Brand: "Prinivil", Generic: "lisinopril",
			Rxcuis:       []string{"300", "301"},
			MajorClasses: []string{"M2"}, MinorClasses: []string{"C2"},
		},
		{
			// Same name pair as the first row, differing only in case
			Brand: "BAYER ASPIRIN", Generic: "Aspirin",
			Rxcuis:       []string{"100"},
			MajorClasses: []string{"M1"}, MinorClasses: []string{"C1"},
		},
	}

	report := NewDataValidator().ReportDataQuality(drugs)

	if report.TotalRows != 5 {
		t.Errorf("TotalRows = %d, want 5", report.TotalRows)
	}
	if report.UnmatchedRows != 1 {
		t.Errorf("UnmatchedRows = %d, want 1", report.UnmatchedRows)
	}
	if report.UnclassifiedRows != 1 {
		t.Errorf("UnclassifiedRows = %d, want 1", report.UnclassifiedRows)
	}
	if report.MultiIdentifierRows != 1 {
		t.Errorf("MultiIdentifierRows = %d, want 1", report.MultiIdentifierRows)
	}
	if len(report.DuplicateNamePairs) != 1 {
		t.Fatalf("DuplicateNamePairs = %v, want one entry", report.DuplicateNamePairs)
	}
}

func TestReportDataQualityEmptyTable(t *testing.T) {
	report := NewDataValidator().ReportDataQuality(nil)

	if report.TotalRows != 0 || report.UnmatchedRows != 0 {
		t.Errorf("report = %+v, want all zero", report)
	}
	if len(report.DuplicateNamePairs) != 0 {
		t.Errorf("DuplicateNamePairs = %v, want empty", report.DuplicateNamePairs)
	}
}
