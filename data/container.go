// Package data provides thread-safe data storage for the drugclass API.
// The DataContainer swaps whole datasets atomically so readers never see a
// partially updated table.
package data

import (
	"sync/atomic"
	"time"

	"github.com/drugdata/drugclass-api/drugparser/entities"
	"github.com/drugdata/drugclass-api/interfaces"
	"github.com/drugdata/drugclass-api/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds all the data with atomic pointers for zero-downtime updates
type DataContainer struct {
	drugs           atomic.Value // []entities.ResolvedDrug
	drugsByName     atomic.Value // map[string]entities.ResolvedDrug
	spending        atomic.Value // []entities.YearSpending
	totalNames      atomic.Int64
	unmatchedNames  atomic.Int64
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty data
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.drugs.Store(make([]entities.ResolvedDrug, 0))
	dc.drugsByName.Store(make(map[string]entities.ResolvedDrug))
	dc.spending.Store(make([]entities.YearSpending, 0))
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// Thread-safe getters with type check

// GetDrugs returns the enriched drug table
func (dc *DataContainer) GetDrugs() []entities.ResolvedDrug {
	if v := dc.drugs.Load(); v != nil {
		if drugs, ok := v.([]entities.ResolvedDrug); ok {
			return drugs
		}
	}

	logging.Warn("Drug table is empty or invalid")
	return []entities.ResolvedDrug{}
}

// GetDrugsByName returns the name lookup map for O(1) exact queries
func (dc *DataContainer) GetDrugsByName() map[string]entities.ResolvedDrug {
	if v := dc.drugsByName.Load(); v != nil {
		if byName, ok := v.(map[string]entities.ResolvedDrug); ok {
			return byName
		}
	}

	logging.Warn("Drug name map is empty or invalid")
	return make(map[string]entities.ResolvedDrug)
}

// GetSpending returns the per-year spending tables
func (dc *DataContainer) GetSpending() []entities.YearSpending {
	if v := dc.spending.Load(); v != nil {
		if spending, ok := v.([]entities.YearSpending); ok {
			return spending
		}
	}

	logging.Warn("Spending tables are empty or invalid")
	return []entities.YearSpending{}
}

// GetStats returns the row counts of the last build
func (dc *DataContainer) GetStats() (total int, unmatched int) {
	return int(dc.totalNames.Load()), int(dc.unmatchedNames.Load())
}

// GetLastUpdated returns the timestamp of the last data update
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a data update is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically swaps in a freshly built dataset
func (dc *DataContainer) UpdateData(dataset *entities.Dataset) {
	dc.drugs.Store(dataset.Drugs)
	dc.drugsByName.Store(dataset.DrugsByName)
	dc.spending.Store(dataset.Spending)
	dc.totalNames.Store(int64(dataset.TotalNames))
	dc.unmatchedNames.Store(int64(dataset.UnmatchedNames))
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a data update operation.
// Returns true if update can proceed, false if another update is in progress
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a data update operation
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
