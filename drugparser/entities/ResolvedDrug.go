package entities

// ResolvedDrug is one row of the enriched drug table: the original name
// columns plus every RXCUI the names resolved to and the classes those
// RXCUIs belong to. The multi-valued columns are real slices here; they
// are pipe-joined only at serialization time. A slice is never empty:
// when nothing matched it holds exactly one sentinel value so the
// serialized column is always populated.
type ResolvedDrug struct {
	Brand           string   `json:"drugname_brand"`
	Generic         string   `json:"drugname_generic"`
	Rxcuis          []string `json:"identifier"`
	MajorClasses    []string `json:"major_class"`
	MajorClassNames []string `json:"major_class_name"`
	MinorClasses    []string `json:"minor_class"`
	MinorClassNames []string `json:"minor_class_name"`
}

// Dataset is everything one full parse produces, swapped into the data
// container as a unit.
type Dataset struct {
	Drugs       []ResolvedDrug
	DrugsByName map[string]ResolvedDrug
	Spending    []YearSpending
	// TotalNames and UnmatchedNames feed the post-build report: the
	// fraction of rows whose RXCUI column is the no-match sentinel.
	TotalNames     int
	UnmatchedNames int
	RegistrySize   int
}
