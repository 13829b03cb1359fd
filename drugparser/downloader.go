// Package drugparser downloads and parses the public reference datasets
// (Part D spending, the RxNorm name registry, the prescription-drug profile
// sample and the class-description tables) and assembles them into the
// enriched drug table.
package drugparser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/drugdata/drugclass-api/logging"
	"golang.org/x/text/encoding/charmap"
)

func downloadAndParseFile(dataDir string, name string, url string) error {

	path := filepath.Join(dataDir, name+".txt")
	cleanPath := filepath.Clean(path)
	if !strings.HasPrefix(cleanPath, filepath.Clean(dataDir)) {
		return fmt.Errorf("invalid filepath: %s", path)
	}

	client := &http.Client{
		Timeout: 5 * time.Minute,
	}
	response, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() {
		if err = response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading %s", response.StatusCode, url)
	}

	// Some of the sources serve ISO-8859-1, others UTF-8, so the content
	// has to be sniffed before writing
	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var reader io.Reader
	if utf8.Valid(bodyBytes) {
		reader = bytes.NewReader(bodyBytes)
	} else {
		reader = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	}

	outFile, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", cleanPath, err)
	}
	defer func() {
		if err = outFile.Close(); err != nil {
			logging.Warn("Failed to close output file", "error", err)
		}
	}()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	for scanner.Scan() {
		_, err = io.WriteString(outFile, scanner.Text()+"\n")
		if err != nil {
			return fmt.Errorf("failed to write to file %s: %w", cleanPath, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error in %s: %w", path, err)
	}

	logging.Debug(fmt.Sprintf("%s downloaded and parsed without errors", name))
	return nil
}

// Download all files concurrently
func downloadAndParseAll(dataDir string) error {

	var files = map[string]string{
		"Spending":     "https://data.cms.gov/download/part-d-drug-spending/Part_D_All_Drugs_2015.txt",
		"RxnConso":     "https://download.nlm.nih.gov/umls/rxnorm/RXNCONSO.RRF",
		"DrugProfiles": "https://data.cms.gov/download/pde-profiles/PartD_Drug_Profiles_Sample.txt",
		"MajorClasses": "https://data.cms.gov/download/drug-classes/Major_Drug_Classes.txt",
		"MinorClasses": "https://data.cms.gov/download/drug-classes/Minor_Drug_Classes.txt",
	}

	err := os.MkdirAll(dataDir, 0750)
	if err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error

	for fileName, url := range files {
		wg.Add(1)

		go func(file string, url string) {
			defer wg.Done()
			if err := downloadAndParseFile(dataDir, file, url); err != nil {
				mu.Lock()
				errors = append(errors, err)
				mu.Unlock()
			}
		}(fileName, url)

	}
	wg.Wait()

	if len(errors) > 0 {
		logging.Error("Download errors occurred", "errors", errors)
		return fmt.Errorf("download errors: %v", errors)
	}

	return nil
}
