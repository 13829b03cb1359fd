package resolver

import (
	"slices"
	"testing"

	"github.com/drugdata/drugclass-api/drugparser/entities"
)

func testClassIndex() *ClassIndex {
	profiles := []entities.ProfileEntry{
		{Rxcui: "100", MajorClass: "M1", MinorClass: "C1"},
		// Duplicate profile rows are expected in the sample
		{Rxcui: "100", MajorClass: "M1", MinorClass: "C1"},
		{Rxcui: "100", MajorClass: "M1", MinorClass: "C2"},
		{Rxcui: "200", MajorClass: "M2", MinorClass: "C1"},
	}
	majors := []entities.ClassDescription{
		{Code: "M1", Description: "Analgesic"},
		{Code: "M2", Description: "Antihypertensive"},
	}
	minors := []entities.ClassDescription{
		{Code: "C1", Description: "NSAID"},
		{Code: "C2", Description: "N/A"},
	}
	return NewClassIndex(profiles, majors, minors)
}

func TestAggregateSingleIdentifier(t *testing.T) {
	sets := testClassIndex().Aggregate([]string{"100"})

	if want := []string{"M1"}; !slices.Equal(sets.MajorClasses, want) {
		t.Errorf("MajorClasses = %v, want %v", sets.MajorClasses, want)
	}
	if want := []string{"Analgesic"}; !slices.Equal(sets.MajorClassNames, want) {
		t.Errorf("MajorClassNames = %v, want %v", sets.MajorClassNames, want)
	}
	if want := []string{"C1", "C2"}; !slices.Equal(sets.MinorClasses, want) {
		t.Errorf("MinorClasses = %v, want %v", sets.MinorClasses, want)
	}
	if want := []string{"NSAID", "N/A"}; !slices.Equal(sets.MinorClassNames, want) {
		t.Errorf("MinorClassNames = %v, want %v", sets.MinorClassNames, want)
	}
}

func TestAggregateUnionsAcrossIdentifiers(t *testing.T) {
	sets := testClassIndex().Aggregate([]string{"100", "200"})

	if want := []string{"M1", "M2"}; !slices.Equal(sets.MajorClasses, want) {
		t.Errorf("MajorClasses = %v, want %v", sets.MajorClasses, want)
	}
	// C1 appears under both identifiers but only once in the union
	if want := []string{"C1", "C2"}; !slices.Equal(sets.MinorClasses, want) {
		t.Errorf("MinorClasses = %v, want %v", sets.MinorClasses, want)
	}
}

func TestAggregateSentinelIdentifierSet(t *testing.T) {
	sets := testClassIndex().Aggregate([]string{NoMatchRxcui})

	sentinel := []string{NoMatchClass}
	for name, got := range map[string][]string{
		"MajorClasses":    sets.MajorClasses,
		"MajorClassNames": sets.MajorClassNames,
		"MinorClasses":    sets.MinorClasses,
		"MinorClassNames": sets.MinorClassNames,
	} {
		if !slices.Equal(got, sentinel) {
			t.Errorf("%s = %v, want %v", name, got, sentinel)
		}
	}
}

func TestAggregateIdentifierWithoutProfileRows(t *testing.T) {
	sets := testClassIndex().Aggregate([]string{"999"})

	if want := []string{NoMatchClass}; !slices.Equal(sets.MajorClasses, want) {
		t.Errorf("MajorClasses = %v, want %v", sets.MajorClasses, want)
	}
	if want := []string{NoMatchClass}; !slices.Equal(sets.MinorClasses, want) {
		t.Errorf("MinorClasses = %v, want %v", sets.MinorClasses, want)
	}
}

func TestAggregateMissingDescription(t *testing.T) {
	// M3 has profile rows but no entry in the major description table
	profiles := []entities.ProfileEntry{
		{Rxcui: "100", MajorClass: "M3", MinorClass: "C1"},
	}
	minors := []entities.ClassDescription{{Code: "C1", Description: "NSAID"}}
	majors := []entities.ClassDescription{{Code: "M1", Description: "Analgesic"}}
	ix := NewClassIndex(profiles, majors, minors)

	sets := ix.Aggregate([]string{"100"})

	if want := []string{"M3"}; !slices.Equal(sets.MajorClasses, want) {
		t.Errorf("MajorClasses = %v, want %v", sets.MajorClasses, want)
	}
	// Code present, description absent: the name set falls back to the sentinel
	if want := []string{NoMatchClass}; !slices.Equal(sets.MajorClassNames, want) {
		t.Errorf("MajorClassNames = %v, want %v", sets.MajorClassNames, want)
	}
}

func TestAggregateSharedDescriptionDeduplicated(t *testing.T) {
	profiles := []entities.ProfileEntry{
		{Rxcui: "100", MajorClass: "M1", MinorClass: "C1"},
		{Rxcui: "100", MajorClass: "M2", MinorClass: "C1"},
	}
	majors := []entities.ClassDescription{
		{Code: "M1", Description: "Analgesic"},
		{Code: "M2", Description: "Analgesic"},
	}
	minors := []entities.ClassDescription{{Code: "C1", Description: "NSAID"}}
	ix := NewClassIndex(profiles, majors, minors)

	sets := ix.Aggregate([]string{"100"})

	if want := []string{"M1", "M2"}; !slices.Equal(sets.MajorClasses, want) {
		t.Errorf("MajorClasses = %v, want %v", sets.MajorClasses, want)
	}
	if want := []string{"Analgesic"}; !slices.Equal(sets.MajorClassNames, want) {
		t.Errorf("MajorClassNames = %v, want %v", sets.MajorClassNames, want)
	}
}
