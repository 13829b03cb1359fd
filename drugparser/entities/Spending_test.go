package entities

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestSpendingRowMarshalMissingCells(t *testing.T) {
	row := SpendingRow{
		Brand:         "Bayer Aspirin",
		Generic:       "aspirin",
		ClaimCount:    10,
		TotalSpending: math.NaN(),
	}

	out, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	s := string(out)
	if !strings.Contains(s, `"claim_count":10`) {
		t.Errorf("output missing claim_count value: %s", s)
	}
	if !strings.Contains(s, `"total_spending":null`) {
		t.Errorf("missing cell not serialized as null: %s", s)
	}
}

func TestSpendingRowMarshalAllMissing(t *testing.T) {
	var row SpendingRow
	row.Brand = "DrugA"
	for _, set := range []func(*SpendingRow){
		func(r *SpendingRow) { r.ClaimCount = math.NaN() },
		func(r *SpendingRow) { r.TotalSpending = math.NaN() },
		func(r *SpendingRow) { r.UserCount = math.NaN() },
		func(r *SpendingRow) { r.TotalSpendingPerUser = math.NaN() },
		func(r *SpendingRow) { r.UnitCount = math.NaN() },
		func(r *SpendingRow) { r.UnitCostWavg = math.NaN() },
		func(r *SpendingRow) { r.UserCountNonLowIncome = math.NaN() },
		func(r *SpendingRow) { r.OutOfPocketAvgNonLowIncome = math.NaN() },
		func(r *SpendingRow) { r.UserCountLowIncome = math.NaN() },
		func(r *SpendingRow) { r.OutOfPocketAvgLowIncome = math.NaN() },
	} {
		set(&row)
	}

	out, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal returned error for an all-missing row: %v", err)
	}
	if strings.Contains(string(out), "NaN") {
		t.Errorf("NaN leaked into the JSON output: %s", out)
	}
}
