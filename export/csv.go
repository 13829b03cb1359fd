// Package export serializes the enriched drug table: CSV for the file
// artifact and the HTTP export endpoint, Postgres for bulk loading.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/drugdata/drugclass-api/drugparser/entities"
)

// csvHeader is the wire format of the enriched table. Multi-valued cells
// are pipe-delimited; a cell is never empty because unmatched rows carry
// sentinel values.
var csvHeader = []string{
	"drugname_brand",
	"drugname_generic",
	"identifier",
	"major_class",
	"major_class_name",
	"minor_class",
	"minor_class_name",
}

// csvRecord flattens one resolved drug into its serialized row.
func csvRecord(d entities.ResolvedDrug) []string {
	return []string{
		d.Brand,
		d.Generic,
		strings.Join(d.Rxcuis, "|"),
		strings.Join(d.MajorClasses, "|"),
		strings.Join(d.MajorClassNames, "|"),
		strings.Join(d.MinorClasses, "|"),
		strings.Join(d.MinorClassNames, "|"),
	}
}

// WriteCSV writes the enriched drug table to w.
func WriteCSV(w io.Writer, drugs []entities.ResolvedDrug) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range drugs {
		if err := cw.Write(csvRecord(drugs[i])); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the enriched drug table to path, truncating any
// previous artifact.
func WriteCSVFile(path string, drugs []entities.ResolvedDrug) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteCSV(f, drugs); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
