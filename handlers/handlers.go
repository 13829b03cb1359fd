// Package handlers provides HTTP request handlers for the drugclass API
// endpoints: drug table pages, name lookup, per-year spending, CSV export,
// and health checks.
package handlers

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/drugdata/drugclass-api/data"
	"github.com/drugdata/drugclass-api/drugparser/entities"
	"github.com/drugdata/drugclass-api/export"
	"github.com/drugdata/drugclass-api/logging"
	"github.com/drugdata/drugclass-api/resolver"
	"github.com/drugdata/drugclass-api/scheduler"
	"github.com/drugdata/drugclass-api/validation"
	"github.com/go-chi/chi/v5"
)

var serverStartTime = time.Now()

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// ServeAllDrugs returns the full enriched drug table
func ServeAllDrugs(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drugs := dataContainer.GetDrugs()
		RespondWithJSON(w, http.StatusOK, drugs)
	}
}

// ServePagedDrugs returns one page of the enriched drug table
func ServePagedDrugs(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNumber := chi.URLParam(r, "pageNumber")
		page, err := strconv.Atoi(pageNumber)
		if err != nil || page < 1 {
			logging.Warn("Unusual user input", "pageNumber", pageNumber)
			http.Error(w, "Invalid page number", http.StatusBadRequest)
			return
		}

		drugs := dataContainer.GetDrugs()
		pageSize := 25
		start := (page - 1) * pageSize
		end := start + pageSize

		if start >= len(drugs) {
			http.Error(w, "Page not found", http.StatusNotFound)
			return
		}

		if end > len(drugs) {
			end = len(drugs)
		}

		pagedDrugs := drugs[start:end]
		totalItems := len(drugs)
		maxPage := (totalItems + pageSize - 1) / pageSize

		response := map[string]interface{}{
			"data":       pagedDrugs,
			"page":       page,
			"pageSize":   pageSize,
			"totalItems": totalItems,
			"maxPage":    maxPage,
		}

		RespondWithJSON(w, http.StatusOK, response)
	}
}

// FindDrug looks up drugs by name. An exact match on either name column is
// tried first, then each normalized token of the query, then a substring
// scan over both columns.
func FindDrug(dataContainer *data.DataContainer) http.HandlerFunc {
	validator := validation.NewDataValidator()

	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if err := validator.ValidateInput(name); err != nil {
			logging.Warn("Unusual user input", "name", name, "error", err)
			http.Error(w, "Invalid drug name", http.StatusBadRequest)
			return
		}

		lowered := strings.ToLower(name)
		byName := dataContainer.GetDrugsByName()

		if drug, exists := byName[lowered]; exists {
			RespondWithJSON(w, http.StatusOK, []entities.ResolvedDrug{drug})
			return
		}

		// Same splitting the resolver uses, so "benazepril/amlodipine 5mg"
		// finds what its tokens would have matched
		var results []entities.ResolvedDrug
		seen := make(map[string]bool)
		for token := range resolver.Tokens(name) {
			if drug, exists := byName[token]; exists && !seen[drug.Brand] {
				seen[drug.Brand] = true
				results = append(results, drug)
			}
		}

		if len(results) == 0 {
			for _, drug := range dataContainer.GetDrugs() {
				if strings.Contains(strings.ToLower(drug.Brand), lowered) ||
					strings.Contains(strings.ToLower(drug.Generic), lowered) {
					results = append(results, drug)
				}
			}
		}

		if len(results) == 0 {
			http.Error(w, "No drugs found", http.StatusNotFound)
			return
		}

		RespondWithJSON(w, http.StatusOK, results)
	}
}

// ServeSpendingByYear returns the spending table for one year
func ServeSpendingByYear(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		yearStr := chi.URLParam(r, "year")
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			http.Error(w, "Invalid year", http.StatusBadRequest)
			return
		}

		for _, ys := range dataContainer.GetSpending() {
			if ys.Year == year {
				RespondWithJSON(w, http.StatusOK, ys)
				return
			}
		}

		http.Error(w, "Year not found", http.StatusNotFound)
	}
}

// ExportDrugTable streams the enriched drug table as CSV
func ExportDrugTable(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drugs := dataContainer.GetDrugs()
		if len(drugs) == 0 {
			http.Error(w, "Drug table not loaded yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="drug_table.csv"`)

		if err := export.WriteCSV(w, drugs); err != nil {
			logging.Error("Failed to stream drug table CSV", "error", err)
		}
	}
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string                 `json:"status"`
	LastUpdate    string                 `json:"last_update"`
	DataAgeHours  float64                `json:"data_age_hours"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Data          map[string]interface{} `json:"data"`
	System        map[string]interface{} `json:"system"`
}

// HealthCheck returns server health information
func HealthCheck(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		uptime := time.Since(serverStartTime)

		drugs := dataContainer.GetDrugs()
		total, unmatched := dataContainer.GetStats()
		lastUpdate := dataContainer.GetLastUpdated()
		isUpdating := dataContainer.IsUpdating()
		dataAge := time.Since(lastUpdate)

		var healthStatus string
		var httpStatus int
		switch {
		case len(drugs) == 0:
			healthStatus = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		case dataAge > 24*time.Hour:
			healthStatus = "degraded"
			httpStatus = http.StatusOK
		default:
			healthStatus = "healthy"
			httpStatus = http.StatusOK
		}

		unmatchedFraction := 0.0
		if total > 0 {
			unmatchedFraction = float64(unmatched) / float64(total)
		}

		response := HealthResponse{
			Status:        healthStatus,
			LastUpdate:    lastUpdate.Format(time.RFC3339),
			DataAgeHours:  dataAge.Hours(),
			UptimeSeconds: uptime.Seconds(),
			Data: map[string]interface{}{
				"api_version":        "1.0",
				"drugs":              len(drugs),
				"unmatched_names":    unmatched,
				"unmatched_fraction": unmatchedFraction,
				"is_updating":        isUpdating,
				"next_update":        scheduler.CalculateNextUpdate().Format(time.RFC3339),
			},
			System: map[string]interface{}{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]interface{}{
					"alloc_mb":       int(m.Alloc / 1024 / 1024),
					"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
					"sys_mb":         int(m.Sys / 1024 / 1024),
					"num_gc":         m.NumGC,
				},
			},
		}

		RespondWithJSON(w, httpStatus, response)
	}
}
