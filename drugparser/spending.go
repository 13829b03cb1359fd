package drugparser

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/drugdata/drugclass-api/drugparser/entities"
	"github.com/drugdata/drugclass-api/logging"
)

// The wide Part D spending file holds one column group per year after the
// two name columns. This table makes the offsets explicit instead of
// baking them into loop arithmetic. 2015 carries one extra column (annual
// change in average unit cost) which is dropped, it can be derived.
var spendingYearColumns = []struct {
	year  int
	start int
	end   int
}{
	{year: 2011, start: 2, end: 12},
	{year: 2012, start: 12, end: 22},
	{year: 2013, start: 22, end: 32},
	{year: 2014, start: 32, end: 42},
	{year: 2015, start: 42, end: 52},
}

// coerceNumeric converts one spending cell to a float64. Currency symbols,
// thousands separators and surrounding whitespace are tolerated; an empty
// or unparseable cell becomes NaN so "no data" survives the coercion. Pure
// function, no ambient parsing options.
func coerceNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "N/A" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// spendingRowFromFields builds one year's SpendingRow from the ten numeric
// cells of that year's column group.
func spendingRowFromFields(brand, generic string, cells []string) entities.SpendingRow {
	nums := make([]float64, 10)
	for i := range nums {
		if i < len(cells) {
			nums[i] = coerceNumeric(cells[i])
		} else {
			nums[i] = math.NaN()
		}
	}

	return entities.SpendingRow{
		Brand:                      brand,
		Generic:                    generic,
		ClaimCount:                 nums[0],
		TotalSpending:              nums[1],
		UserCount:                  nums[2],
		TotalSpendingPerUser:       nums[3],
		UnitCount:                  nums[4],
		UnitCostWavg:               nums[5],
		UserCountNonLowIncome:      nums[6],
		OutOfPocketAvgNonLowIncome: nums[7],
		UserCountLowIncome:         nums[8],
		OutOfPocketAvgLowIncome:    nums[9],
	}
}

// hasData reports whether any numeric cell of the row holds a value. Rows
// with no data at all for a year are dropped from that year's table.
func hasData(row entities.SpendingRow) bool {
	for _, v := range []float64{
		row.ClaimCount, row.TotalSpending, row.UserCount,
		row.TotalSpendingPerUser, row.UnitCount, row.UnitCostWavg,
		row.UserCountNonLowIncome, row.OutOfPocketAvgNonLowIncome,
		row.UserCountLowIncome, row.OutOfPocketAvgLowIncome,
	} {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}

// spendingByYear splits the wide spending file into one table per year,
// ordered by year.
func spendingByYear(dataDir string) ([]entities.YearSpending, error) {
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

	years := make([]entities.YearSpending, len(spendingYearColumns))
	for i, yc := range spendingYearColumns {
		years[i] = entities.YearSpending{Year: yc.year}
	}

	lineCount := 0
	skippedLines := 0

	for scanner.Scan() {
		lineCount++
		line := scanner.Text()

		if len(line) == 0 {
			skippedLines++
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			skippedLines++
			continue
		}

		brand := strings.TrimSpace(fields[0])
		generic := strings.TrimSpace(fields[1])

		for i, yc := range spendingYearColumns {
			var cells []string
			if len(fields) > yc.start {
				end := yc.end
				if end > len(fields) {
					end = len(fields)
				}
				cells = fields[yc.start:end]
			}

			row := spendingRowFromFields(brand, generic, cells)
			if hasData(row) {
				years[i].Rows = append(years[i].Rows, row)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error in Spending.txt: %w", err)
	}

	if skippedLines > 0 {
		logging.Info("Spending.txt year split skip statistics",
			"skipped_lines", skippedLines,
			"total_lines", lineCount)
	}

	fmt.Println("Spending year split completed", "years", len(years))
	return years, nil
}
