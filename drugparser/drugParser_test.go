package drugparser

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/drugdata/drugclass-api/drugparser/entities"
)

// writeReferenceFixtures lays down a minimal but complete set of reference
// files: two drug names (one resolvable, one not), a three-entry registry,
// one classified identifier and both description tables.
func writeReferenceFixtures(t *testing.T, dir string) {
	t.Helper()

	cells := make([]string, 52)
	cells[0] = "Bayer Aspirin"
	cells[1] = "aspirin"
	cells[2] = "10"
	cells[3] = "$2,000"
	spendingRow := strings.Join(cells, "\t")
	writeFixture(t, dir, "Spending.txt",
		spendingRow+"\n"+
			"Unknownium\tunknownium\n")

	writeFixture(t, dir, "RxnConso.txt",
		rrfLine("100", "IN", "Aspirin")+
			rrfLine("200", "BN", "Prinivil"))

	writeFixture(t, dir, "DrugProfiles.txt",
		"100\tM1\tC1\n"+
			"100\tM1\tC9\n") // C9 has no description row

	writeFixture(t, dir, "MajorClasses.txt", "M1\tAnalgesic\n")
	writeFixture(t, dir, "MinorClasses.txt", "C1\tNSAID\n")
}

func TestParseAll(t *testing.T) {
	dir := t.TempDir()
	writeReferenceFixtures(t, dir)

	dataset, err := ParseAll(dir, true)
	if err != nil {
		t.Fatalf("ParseAll returned error: %v", err)
	}

	if len(dataset.Drugs) != 2 {
		t.Fatalf("got %d drugs, want 2", len(dataset.Drugs))
	}
	if dataset.TotalNames != 2 || dataset.UnmatchedNames != 1 {
		t.Errorf("counts = %d total / %d unmatched, want 2 / 1",
			dataset.TotalNames, dataset.UnmatchedNames)
	}
	if dataset.RegistrySize != 2 {
		t.Errorf("RegistrySize = %d, want 2", dataset.RegistrySize)
	}

	matched := dataset.Drugs[0]
	if want := []string{"100"}; !slices.Equal(matched.Rxcuis, want) {
		t.Errorf("matched Rxcuis = %v, want %v", matched.Rxcuis, want)
	}
	if want := []string{"C1", "C9"}; !slices.Equal(matched.MinorClasses, want) {
		t.Errorf("matched MinorClasses = %v, want %v", matched.MinorClasses, want)
	}
	// The description for C9 is defaulted before the build
	if want := []string{"NSAID", "N/A"}; !slices.Equal(matched.MinorClassNames, want) {
		t.Errorf("matched MinorClassNames = %v, want %v", matched.MinorClassNames, want)
	}

	unmatched := dataset.Drugs[1]
	if want := []string{"0.0"}; !slices.Equal(unmatched.Rxcuis, want) {
		t.Errorf("unmatched Rxcuis = %v, want %v", unmatched.Rxcuis, want)
	}
	if want := []string{"0"}; !slices.Equal(unmatched.MajorClasses, want) {
		t.Errorf("unmatched MajorClasses = %v, want %v", unmatched.MajorClasses, want)
	}
}

func TestParseAllNameLookup(t *testing.T) {
	dir := t.TempDir()
	writeReferenceFixtures(t, dir)

	dataset, err := ParseAll(dir, true)
	if err != nil {
		t.Fatalf("ParseAll returned error: %v", err)
	}

	// Lookup is keyed by both lowercased name columns
	for _, key := range []string{"bayer aspirin", "aspirin"} {
		drug, ok := dataset.DrugsByName[key]
		if !ok {
			t.Fatalf("DrugsByName missing key %q", key)
		}
		if drug.Brand != "Bayer Aspirin" {
			t.Errorf("DrugsByName[%q].Brand = %q, want %q", key, drug.Brand, "Bayer Aspirin")
		}
	}
	if _, ok := dataset.DrugsByName["Bayer Aspirin"]; ok {
		t.Error("DrugsByName holds an unlowercased key")
	}
}

func TestParseAllSpendingAndArtifact(t *testing.T) {
	dir := t.TempDir()
	writeReferenceFixtures(t, dir)

	dataset, err := ParseAll(dir, true)
	if err != nil {
		t.Fatalf("ParseAll returned error: %v", err)
	}

	if len(dataset.Spending) != 5 {
		t.Fatalf("got %d spending years, want 5", len(dataset.Spending))
	}
	if dataset.Spending[0].Year != 2011 || len(dataset.Spending[0].Rows) != 1 {
		t.Errorf("2011 spending = %+v, want one row", dataset.Spending[0])
	}

	artifact := filepath.Join(dir, "drug_table.csv")
	content, err := os.ReadFile(artifact)
	if err != nil {
		t.Fatalf("drug table artifact not written: %v", err)
	}
	if !strings.Contains(string(content), "Bayer Aspirin") {
		t.Error("drug table artifact does not contain the resolved drug row")
	}
}

func TestParseAllMissingReferenceFile(t *testing.T) {
	dir := t.TempDir()
	writeReferenceFixtures(t, dir)
	if err := os.Remove(filepath.Join(dir, "RxnConso.txt")); err != nil {
		t.Fatalf("failed to remove fixture: %v", err)
	}

	if _, err := ParseAll(dir, true); err == nil {
		t.Fatal("expected error when a reference file is missing, got nil")
	}
}

func TestDefaultMissingMinorDescriptions(t *testing.T) {
	profiles := []entities.ProfileEntry{
		{Rxcui: "100", MajorClass: "M1", MinorClass: "C1"},
		{Rxcui: "100", MajorClass: "M1", MinorClass: "C9"},
		{Rxcui: "200", MajorClass: "M2", MinorClass: "C9"},
		{Rxcui: "300", MajorClass: "M3", MinorClass: ""},
	}
	minors := []entities.ClassDescription{{Code: "C1", Description: "NSAID"}}

	got := defaultMissingMinorDescriptions(profiles, minors)

	want := []entities.ClassDescription{
		{Code: "C1", Description: "NSAID"},
		{Code: "C9", Description: "N/A"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d descriptions, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("description %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
