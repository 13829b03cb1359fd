// Package interfaces defines core abstractions for the drugclass API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/drugdata/drugclass-api/drugparser/entities"
)

// DataStore defines the contract for data storage operations.
// It provides thread-safe access to the enriched drug table and the
// spending tables with atomic operations for zero-downtime updates.
type DataStore interface {
	GetDrugs() []entities.ResolvedDrug
	GetDrugsByName() map[string]entities.ResolvedDrug
	GetSpending() []entities.YearSpending
	GetStats() (total int, unmatched int)
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	UpdateData(dataset *entities.Dataset)
	BeginUpdate() bool
	EndUpdate()
}

// Parser defines the contract for producing a complete dataset from the
// external reference sources.
type Parser interface {
	ParseAll() (*entities.Dataset, error)
}

// Scheduler defines the contract for job scheduling and health monitoring.
type Scheduler interface {
	Start() error
	Stop()
}
