package entities

import (
	"encoding/json"
	"math"
)

// SpendingRow is one drug's Part D spending figures for a single year.
// Missing cells are NaN so "no data" survives the numeric coercion.
type SpendingRow struct {
	Brand                      string  `json:"drugname_brand"`
	Generic                    string  `json:"drugname_generic"`
	ClaimCount                 float64 `json:"claim_count"`
	TotalSpending              float64 `json:"total_spending"`
	UserCount                  float64 `json:"user_count"`
	TotalSpendingPerUser       float64 `json:"total_spending_per_user"`
	UnitCount                  float64 `json:"unit_count"`
	UnitCostWavg               float64 `json:"unit_cost_wavg"`
	UserCountNonLowIncome      float64 `json:"user_count_non_lowincome"`
	OutOfPocketAvgNonLowIncome float64 `json:"out_of_pocket_avg_non_lowincome"`
	UserCountLowIncome         float64 `json:"user_count_lowincome"`
	OutOfPocketAvgLowIncome    float64 `json:"out_of_pocket_avg_lowincome"`
}

// MarshalJSON serializes missing cells as null; NaN has no JSON
// representation and would fail encoding.
func (r SpendingRow) MarshalJSON() ([]byte, error) {
	opt := func(v float64) *float64 {
		if math.IsNaN(v) {
			return nil
		}
		return &v
	}
	return json.Marshal(struct {
		Brand                      string   `json:"drugname_brand"`
		Generic                    string   `json:"drugname_generic"`
		ClaimCount                 *float64 `json:"claim_count"`
		TotalSpending              *float64 `json:"total_spending"`
		UserCount                  *float64 `json:"user_count"`
		TotalSpendingPerUser       *float64 `json:"total_spending_per_user"`
		UnitCount                  *float64 `json:"unit_count"`
		UnitCostWavg               *float64 `json:"unit_cost_wavg"`
		UserCountNonLowIncome      *float64 `json:"user_count_non_lowincome"`
		OutOfPocketAvgNonLowIncome *float64 `json:"out_of_pocket_avg_non_lowincome"`
		UserCountLowIncome         *float64 `json:"user_count_lowincome"`
		OutOfPocketAvgLowIncome    *float64 `json:"out_of_pocket_avg_lowincome"`
	}{
		Brand:                      r.Brand,
		Generic:                    r.Generic,
		ClaimCount:                 opt(r.ClaimCount),
		TotalSpending:              opt(r.TotalSpending),
		UserCount:                  opt(r.UserCount),
		TotalSpendingPerUser:       opt(r.TotalSpendingPerUser),
		UnitCount:                  opt(r.UnitCount),
		UnitCostWavg:               opt(r.UnitCostWavg),
		UserCountNonLowIncome:      opt(r.UserCountNonLowIncome),
		OutOfPocketAvgNonLowIncome: opt(r.OutOfPocketAvgNonLowIncome),
		UserCountLowIncome:         opt(r.UserCountLowIncome),
		OutOfPocketAvgLowIncome:    opt(r.OutOfPocketAvgLowIncome),
	})
}

// YearSpending pairs a year with its spending table. The source file packs
// all years into column groups of one wide sheet; after the split each year
// is an explicit record so nothing downstream needs to know column offsets.
type YearSpending struct {
	Year int           `json:"year"`
	Rows []SpendingRow `json:"rows"`
}
