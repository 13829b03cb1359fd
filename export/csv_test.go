package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/drugdata/drugclass-api/drugparser/entities"
)

func testDrugs() []entities.ResolvedDrug {
	return []entities.ResolvedDrug{
		{
			Brand:           "Bayer Aspirin",
			Generic:         "aspirin",
			Rxcuis:          []string{"100", "101"},
			MajorClasses:    []string{"M1"},
			MajorClassNames: []string{"Analgesic"},
			MinorClasses:    []string{"C1", "C2"},
			MinorClassNames: []string{"NSAID"},
		},
		{
			Brand:           "Unknownium",
			Generic:         "unknownium",
			Rxcuis:          []string{"0.0"},
			MajorClasses:    []string{"0"},
			MajorClassNames: []string{"0"},
			MinorClasses:    []string{"0"},
			MinorClassNames: []string{"0"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testDrugs()); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header plus 2 rows", len(records))
	}

	if !slices.Equal(records[0], csvHeader) {
		t.Errorf("header = %v, want %v", records[0], csvHeader)
	}

	wantMatched := []string{
		"Bayer Aspirin", "aspirin", "100|101", "M1", "Analgesic", "C1|C2", "NSAID",
	}
	if !slices.Equal(records[1], wantMatched) {
		t.Errorf("matched row = %v, want %v", records[1], wantMatched)
	}

	wantUnmatched := []string{
		"Unknownium", "unknownium", "0.0", "0", "0", "0", "0",
	}
	if !slices.Equal(records[2], wantUnmatched) {
		t.Errorf("unmatched row = %v, want %v", records[2], wantUnmatched)
	}
}

func TestWriteCSVEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want header only", len(records))
	}
}

func TestWriteCSVFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drug_table.csv")

	if err := WriteCSVFile(path, testDrugs()); err != nil {
		t.Fatalf("first WriteCSVFile returned error: %v", err)
	}
	if err := WriteCSVFile(path, testDrugs()[:1]); err != nil {
		t.Fatalf("second WriteCSVFile returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open artifact: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("artifact is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records after rewrite, want header plus 1 row", len(records))
	}
}

func TestPgRowMatchesColumnOrder(t *testing.T) {
	row := pgRow(testDrugs()[0])

	if len(row) != len(csvHeader) {
		t.Fatalf("pgRow has %d values, want %d columns", len(row), len(csvHeader))
	}

	want := []any{
		"Bayer Aspirin", "aspirin", "100|101", "M1", "Analgesic", "C1|C2", "NSAID",
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %s = %v, want %v", csvHeader[i], row[i], want[i])
		}
	}
}
