package drugparser

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/drugdata/drugclass-api/drugparser/entities"
	"github.com/drugdata/drugclass-api/logging"
)

// Term types from the registry worth matching against: ingredients,
// precise ingredients and brand names. Everything else (dose forms, packs,
// synonyms of those) only adds noise to name resolution.
var registryTermTypes = map[string]bool{
	"IN":  true,
	"PIN": true,
	"BN":  true,
}

// makeDrugNames extracts the brand/generic name pairs from the first two
// columns of the Part D spending file.
func makeDrugNames(dataDir string, wg *sync.WaitGroup) ([]entities.DrugName, error) {
	if wg != nil {
		defer wg.Done()
	}

	tsvFile, err := os.Open(filepath.Join(dataDir, "Spending.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to open Spending.txt: %w", err)
	}
	defer func() {
		if err := tsvFile.Close(); err != nil {
			logging.Warn("Failed to close spending TSV file", "error", err)
		}
	}()

	scanner := bufio.NewScanner(tsvFile)
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	var records []entities.DrugName
	lineCount := 0
	skippedEmptyLines := 0
	skippedMissingColumns := 0

	for scanner.Scan() {
		lineCount++
		line := scanner.Text()

		// Skip empty lines silently
		if len(line) == 0 {
			skippedEmptyLines++
			continue
		}

		fields := strings.Split(line, "\t")

		if len(fields) < 2 {
			skippedMissingColumns++
			continue
		}

		record := entities.DrugName{
			Brand:   strings.TrimSpace(fields[0]),
			Generic: strings.TrimSpace(fields[1]),
		}

		if record.Brand == "" && record.Generic == "" {
			skippedEmptyLines++
			continue
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error in Spending.txt: %w", err)
	}

	if skippedEmptyLines > 0 || skippedMissingColumns > 0 {
		logging.Info("Spending.txt name extraction skip statistics",
			"empty_lines", skippedEmptyLines,
			"missing_columns", skippedMissingColumns,
			"total_lines", lineCount,
			"records_parsed", len(records))
	}

	fmt.Println("Drug names conversion completed", "records_count", len(records))
	return records, nil
}

// makeRegistry parses the RxNorm concept file (pipe-delimited RRF: RXCUI at
// field 0, TTY at field 12, STR at field 14) into the identifier registry.
// Names are lowercased here so the registry is already normalized when the
// resolver sees it.
func makeRegistry(dataDir string, wg *sync.WaitGroup) ([]entities.RegistryEntry, error) {
	if wg != nil {
		defer wg.Done()
	}

	rrfFile, err := os.Open(filepath.Join(dataDir, "RxnConso.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to open RxnConso.txt: %w", err)
	}
	defer func() {
		if err := rrfFile.Close(); err != nil {
			logging.Warn("Failed to close registry RRF file", "error", err)
		}
	}()

	scanner := bufio.NewScanner(rrfFile)
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	var records []entities.RegistryEntry
	lineCount := 0
	skippedEmptyLines := 0
	skippedMissingColumns := 0
	skippedTermTypes := 0

	for scanner.Scan() {
		lineCount++
		line := scanner.Text()

		if len(line) == 0 {
			skippedEmptyLines++
			continue
		}

		fields := strings.Split(line, "|")

		if len(fields) < 15 {
			skippedMissingColumns++
			continue
		}

		if !registryTermTypes[fields[12]] {
			skippedTermTypes++
			continue
		}

		rxcui := strings.TrimSpace(fields[0])
		name := strings.ToLower(strings.TrimSpace(fields[14]))
		if rxcui == "" || name == "" {
			skippedMissingColumns++
			continue
		}

		records = append(records, entities.RegistryEntry{
			Rxcui: rxcui,
			Name:  name,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error in RxnConso.txt: %w", err)
	}

	if skippedEmptyLines > 0 || skippedMissingColumns > 0 {
		logging.Info("RxnConso.txt skip statistics",
			"empty_lines", skippedEmptyLines,
			"missing_columns", skippedMissingColumns,
			"other_term_types", skippedTermTypes,
			"total_lines", lineCount,
			"records_parsed", len(records))
	}

	fmt.Println("Registry file conversion completed", "records_count", len(records))
	return records, nil
}

// makeProfiles parses the prescription-drug profile sample. Only the RXCUI
// and the two class-code columns are kept; the sample carries more columns
// that the build never uses.
func makeProfiles(dataDir string, wg *sync.WaitGroup) ([]entities.ProfileEntry, error) {
	if wg != nil {
		defer wg.Done()
	}

	tsvFile, err := os.Open(filepath.Join(dataDir, "DrugProfiles.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to open DrugProfiles.txt: %w", err)
	}
	defer func() {
		if err := tsvFile.Close(); err != nil {
			logging.Warn("Failed to close profiles TSV file", "error", err)
		}
	}()

	scanner := bufio.NewScanner(tsvFile)

	var records []entities.ProfileEntry
	lineCount := 0
	skippedEmptyLines := 0
	skippedMissingColumns := 0

	for scanner.Scan() {
		lineCount++
		line := scanner.Text()

		if len(line) == 0 {
			skippedEmptyLines++
			continue
		}

		fields := strings.Split(line, "\t")

		if len(fields) < 3 {
			skippedMissingColumns++
			continue
		}

		rxcui := strings.TrimSpace(fields[0])
		if rxcui == "" {
			skippedMissingColumns++
			continue
		}

		records = append(records, entities.ProfileEntry{
			Rxcui:      rxcui,
			MajorClass: strings.TrimSpace(fields[1]),
			MinorClass: strings.TrimSpace(fields[2]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error in DrugProfiles.txt: %w", err)
	}

	if skippedEmptyLines > 0 || skippedMissingColumns > 0 {
		logging.Info("DrugProfiles.txt skip statistics",
			"empty_lines", skippedEmptyLines,
			"missing_columns", skippedMissingColumns,
			"total_lines", lineCount,
			"records_parsed", len(records))
	}

	fmt.Println("Drug profiles conversion completed", "records_count", len(records))
	return records, nil
}

// makeClassDescriptions parses a two-column class-description table. The
// same reader serves the major and minor tables.
func makeClassDescriptions(dataDir string, fileName string, wg *sync.WaitGroup) ([]entities.ClassDescription, error) {
	if wg != nil {
		defer wg.Done()
	}

	tsvFile, err := os.Open(filepath.Join(dataDir, fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fileName, err)
	}
	defer func() {
		if err := tsvFile.Close(); err != nil {
			logging.Warn("Failed to close class description TSV file", "file", fileName, "error", err)
		}
	}()

	scanner := bufio.NewScanner(tsvFile)

	var records []entities.ClassDescription
	lineCount := 0
	skippedEmptyLines := 0
	skippedMissingColumns := 0

	for scanner.Scan() {
		lineCount++
		line := scanner.Text()

		if len(line) == 0 {
			skippedEmptyLines++
			continue
		}

		fields := strings.Split(line, "\t")

		if len(fields) < 2 {
			skippedMissingColumns++
			continue
		}

		code := strings.TrimSpace(fields[0])
		if code == "" {
			skippedMissingColumns++
			continue
		}

		records = append(records, entities.ClassDescription{
			Code:        code,
			Description: strings.TrimSpace(fields[1]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error in %s: %w", fileName, err)
	}

	if skippedEmptyLines > 0 || skippedMissingColumns > 0 {
		logging.Info(fileName+" skip statistics",
			"empty_lines", skippedEmptyLines,
			"missing_columns", skippedMissingColumns,
			"total_lines", lineCount,
			"records_parsed", len(records))
	}

	fmt.Println(fileName+" conversion completed", "records_count", len(records))
	return records, nil
}
