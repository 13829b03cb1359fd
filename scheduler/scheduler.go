// Package scheduler provides automated dataset refresh scheduling and
// health monitoring for the drugclass API. It coordinates rebuilds of the
// enriched drug table with the data container using dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/drugdata/drugclass-api/interfaces"
	"github.com/drugdata/drugclass-api/logging"
	"github.com/drugdata/drugclass-api/metrics"
	"github.com/drugdata/drugclass-api/validation"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles data updates and health monitoring using dependency injection
type Scheduler struct {
	dataStore interfaces.DataStore
	parser    interfaces.Parser
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		parser:    parser,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial data load and schedules daily refreshes
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.updateData(); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		return fmt.Errorf("initial data load failed: %w", err)
	}

	// Schedule updates at 06:00 and 18:00 daily
	_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
		if err := s.updateData(); err != nil {
			logging.Error("Failed to update data", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule updates", "error", err)
		return fmt.Errorf("failed to schedule updates: %w", err)
	}

	s.scheduler.StartAsync()

	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// updateData performs a complete dataset rebuild using the injected parser
func (s *Scheduler) updateData() error {
	// Prevent concurrent updates
	if !s.dataStore.BeginUpdate() {
		logging.Info("Update already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info(fmt.Sprintf("Starting dataset update at: %s", time.Now().Format(time.RFC3339)))
	start := time.Now()

	dataset, err := s.parser.ParseAll()
	if err != nil {
		logging.Error("Failed to build drug table", "error", err)
		return fmt.Errorf("failed to build drug table: %w", err)
	}

	validator := validation.NewDataValidator()
	report := validator.ReportDataQuality(dataset.Drugs)

	if len(report.DuplicateNamePairs) > 0 {
		logging.Warn("Duplicate name pairs detected",
			"total", len(report.DuplicateNamePairs),
			"pairs", report.DuplicateNamePairs,
		)
	}

	if report.UnclassifiedRows > 0 {
		logging.Warn("Drugs with identifiers but no classification",
			"count", report.UnclassifiedRows,
		)
	}

	// Atomic swap (zero downtime replacement)
	s.dataStore.UpdateData(dataset)

	metrics.DrugTableRows.Set(float64(dataset.TotalNames))
	if dataset.TotalNames > 0 {
		metrics.UnmatchedNameRatio.Set(float64(dataset.UnmatchedNames) / float64(dataset.TotalNames))
	}

	elapsed := time.Since(start)
	logging.Info("Dataset update completed",
		"duration", elapsed.String(),
		"drug_count", len(dataset.Drugs),
		"unmatched_count", dataset.UnmatchedNames)

	return nil
}

// startHealthMonitoring monitors the freshness of the data updates
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			lastUpdate := s.dataStore.GetLastUpdated()
			if time.Since(lastUpdate) > 25*time.Hour {
				logging.Warn("Data hasn't been updated in over 25 hours")
			}
		}
	}()
}

// CalculateNextUpdate returns the next scheduled update time (06:00 or
// 18:00, whichever comes first)
func CalculateNextUpdate() time.Time {
	now := time.Now()

	sixAM := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
	sixPM := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location())

	if now.Before(sixAM) {
		return sixAM
	}

	if now.Before(sixPM) {
		return sixPM
	}

	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 6, 0, 0, 0, tomorrow.Location())
}
