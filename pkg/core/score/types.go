// Package score computes the three financial-health scores (Altman Z,
// Piotroski F, Beneish M) from trailing-twelve-month snapshots.
package score

import (
	"fmt"
	"math"

	"mops_advisor/pkg/core/statement"
)

// MOPS line-item labels the calculators depend on, as normalized by the
// statement layer (all whitespace collapsed away).
const (
	ItemTotalAssets             = "資產總額"
	ItemTotalLiabilities        = "負債總額"
	ItemCurrentAssetsTotal      = "流動資產合計"
	ItemCurrentLiabilitiesTotal = "流動負債合計"
	ItemNoncurrentAssetsTotal   = "非流動資產合計"
	ItemNoncurrentLiabsTotal    = "非流動負債合計"
	ItemRetainedEarningsTotal   = "保留盈餘合計"
	ItemOperatingRevenueTotal   = "營業收入合計"
	ItemOperatingCostTotal      = "營業成本合計"
	ItemGrossProfit             = "營業毛利（毛損）"
	ItemPretaxIncome            = "本期稅前淨利（淨損）"
	ItemNetIncome               = "本期淨利（淨損）"
	ItemInterestIncome          = "利息收入"
	ItemDepreciationExpense     = "折舊費用"
	ItemAmortizationExpense     = "攤銷費用"
	ItemAccountsReceivableNet   = "應收帳款淨額"
	ItemPPE                     = "不動產、廠房及設備"
	ItemSellingExpense          = "推銷費用"
	ItemAdminExpense            = "管理費用"
	ItemOperatingCashFlow       = "營業活動之淨現金流入（流出）"
)

// Entry is one labeled metric in a score record. Values are float64 for
// ratios, int for the F-Score total, string for the yes/no flag.
type Entry struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Record is the ordered result of one calculator run, plus the fixed
// interpretation guideline for the score.
type Record struct {
	Name      string  `json:"name"`
	Entries   []Entry `json:"entries"`
	Guideline string  `json:"guideline"`
}

// MissingItemError reports a line item required by a formula that the TTM
// snapshot does not carry. Fatal for that score only.
type MissingItemError struct {
	Year int
	Item string
}

func (e *MissingItemError) Error() string {
	return fmt.Sprintf("ttm snapshot for %d is missing item %q", e.Year, e.Item)
}

// ZeroDenominatorError reports a division by exactly zero inside a formula.
// Propagated rather than masked: a silently produced Inf ratio would
// corrupt the combined score with no numeric signal.
type ZeroDenominatorError struct {
	Metric string
}

func (e *ZeroDenominatorError) Error() string {
	return fmt.Sprintf("zero denominator computing %s", e.Metric)
}

// Calculator evaluates scores over TTM snapshots keyed by fiscal year.
// Year is the most recent year present; F needs Year-1 and Year-2 as well,
// M needs Year-1.
type Calculator struct {
	Data map[int]statement.Snapshot
	Year int
}

func NewCalculator(data map[int]statement.Snapshot, year int) *Calculator {
	return &Calculator{Data: data, Year: year}
}

// item reads one line item out of the snapshot for the given year.
func (c *Calculator) item(year int, name string) (float64, error) {
	snapshot, ok := c.Data[year]
	if !ok {
		return 0, &MissingItemError{Year: year, Item: name}
	}
	value, ok := snapshot[name]
	if !ok {
		return 0, &MissingItemError{Year: year, Item: name}
	}
	return value, nil
}

// div is the checked division used by every formula.
func div(numerator, denominator float64, metric string) (float64, error) {
	if denominator == 0 {
		return 0, &ZeroDenominatorError{Metric: metric}
	}
	return numerator / denominator, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
