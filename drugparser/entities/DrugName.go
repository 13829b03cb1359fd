package entities

// DrugName is one Part D listed drug: a brand name and its generic name,
// whitespace-trimmed as loaded.
type DrugName struct {
	Brand   string `json:"drugname_brand"`
	Generic string `json:"drugname_generic"`
}

// RegistryEntry is one row of the RxNorm name registry. Name is stored
// lowercased so lookups are case-normalized at load time, not per query.
type RegistryEntry struct {
	Rxcui string `json:"rxcui"`
	Name  string `json:"name"`
}

// ProfileEntry links an RXCUI to a major and minor drug class code.
// The profile sample contains many duplicate rows per RXCUI.
type ProfileEntry struct {
	Rxcui      string `json:"rxcui"`
	MajorClass string `json:"major_class"`
	MinorClass string `json:"minor_class"`
}

// ClassDescription is one row of a class-description table.
type ClassDescription struct {
	Code        string `json:"class_code"`
	Description string `json:"description"`
}
