package drugparser

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/drugdata/drugclass-api/drugparser/entities"
	"github.com/drugdata/drugclass-api/export"
	"github.com/drugdata/drugclass-api/logging"
	"github.com/drugdata/drugclass-api/resolver"
)

// ParseAll downloads the reference files (unless skipDownload is set),
// parses the four reference tables plus the per-year spending tables, and
// resolves every drug name into the enriched drug table. The enriched
// table is also written to dataDir as a CSV artifact.
func ParseAll(dataDir string, skipDownload bool) (*entities.Dataset, error) {

	if !skipDownload {
		if err := downloadAndParseAll(dataDir); err != nil {
			return nil, fmt.Errorf("failed to download reference files: %w", err)
		}
	}

	// Read all the reference files concurrently
	var wg sync.WaitGroup
	var mu sync.Mutex
	var readErrs []error

	var (
		names    []entities.DrugName
		registry []entities.RegistryEntry
		profiles []entities.ProfileEntry
		majors   []entities.ClassDescription
		minors   []entities.ClassDescription
	)

	collect := func(err error) {
		if err != nil {
			mu.Lock()
			readErrs = append(readErrs, err)
			mu.Unlock()
		}
	}

	wg.Add(5)
	go func() {
		var err error
		names, err = makeDrugNames(dataDir, &wg)
		collect(err)
	}()
	go func() {
		var err error
		registry, err = makeRegistry(dataDir, &wg)
		collect(err)
	}()
	go func() {
		var err error
		profiles, err = makeProfiles(dataDir, &wg)
		collect(err)
	}()
	go func() {
		var err error
		majors, err = makeClassDescriptions(dataDir, "MajorClasses.txt", &wg)
		collect(err)
	}()
	go func() {
		var err error
		minors, err = makeClassDescriptions(dataDir, "MinorClasses.txt", &wg)
		collect(err)
	}()
	wg.Wait()

	if len(readErrs) > 0 {
		return nil, fmt.Errorf("failed to read reference files: %v", readErrs)
	}

	fmt.Printf("Number of drug names to process: %d\n", len(names))
	fmt.Printf("Number of registry entries: %d\n", len(registry))
	fmt.Printf("Number of profile rows: %d\n", len(profiles))

	// Codes referenced by the profile but absent from the minor-class
	// table get an "N/A" description.
	minors = defaultMissingMinorDescriptions(profiles, minors)

	reg := resolver.NewRegistry(registry)
	classes := resolver.NewClassIndex(profiles, majors, minors)

	drugs, stats, err := resolver.BuildDrugTable(names, reg, classes)
	if err != nil {
		return nil, fmt.Errorf("failed to build drug table: %w", err)
	}

	// Name lookup map for O(1) exact queries, keyed by both name columns
	drugsByName := make(map[string]entities.ResolvedDrug, len(drugs)*2)
	for i := range drugs {
		if k := strings.ToLower(drugs[i].Brand); k != "" {
			drugsByName[k] = drugs[i]
		}
		if k := strings.ToLower(drugs[i].Generic); k != "" {
			drugsByName[k] = drugs[i]
		}
	}

	spending, err := spendingByYear(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to split spending by year: %w", err)
	}

	// Persist the enriched table next to the source files
	artifact := filepath.Join(dataDir, "drug_table.csv")
	if err := export.WriteCSVFile(artifact, drugs); err != nil {
		logging.Error("Error writing drug table artifact", "path", artifact, "error", err)
	} else {
		logging.Info("Drug table artifact written", "path", artifact)
	}

	return &entities.Dataset{
		Drugs:          drugs,
		DrugsByName:    drugsByName,
		Spending:       spending,
		TotalNames:     stats.Total,
		UnmatchedNames: stats.Unmatched,
		RegistrySize:   reg.Len(),
	}, nil
}

// defaultMissingMinorDescriptions appends an "N/A" description for every
// minor class code the profile references but the description table lacks.
func defaultMissingMinorDescriptions(profiles []entities.ProfileEntry, minors []entities.ClassDescription) []entities.ClassDescription {
	known := make(map[string]bool, len(minors))
	for _, d := range minors {
		known[d.Code] = true
	}

	added := 0
	for _, p := range profiles {
		if p.MinorClass == "" || known[p.MinorClass] {
			continue
		}
		known[p.MinorClass] = true
		minors = append(minors, entities.ClassDescription{Code: p.MinorClass, Description: "N/A"})
		added++
	}

	if added > 0 {
		logging.Info("Minor class codes without descriptions defaulted to N/A", "count", added)
	}

	return minors
}
