package drugparser

import (
	"github.com/drugdata/drugclass-api/drugparser/entities"
	"github.com/drugdata/drugclass-api/interfaces"
)

// Compile-time check to ensure DrugParser implements Parser interface
var _ interfaces.Parser = (*DrugParser)(nil)

// DrugParser implements the Parser interface
type DrugParser struct {
	DataDir      string
	SkipDownload bool
}

// NewDrugParser creates a new DrugParser reading from dataDir
func NewDrugParser(dataDir string) *DrugParser {
	return &DrugParser{DataDir: dataDir}
}

// ParseAll implements the Parser interface
func (p *DrugParser) ParseAll() (*entities.Dataset, error) {
	return ParseAll(p.DataDir, p.SkipDownload)
}
