// Package statement turns raw MOPS report tables into a period-indexed
// ledger of line-item amounts and derives trailing-twelve-month snapshots
// from it.
package statement

import (
	"context"
	"fmt"
)

// ReportType is a closed set of the three disclosure statements consumed.
type ReportType int

const (
	BalanceSheet ReportType = iota
	ComprehensiveIncome
	CashFlow
)

func (t ReportType) String() string {
	switch t {
	case BalanceSheet:
		return "BS"
	case ComprehensiveIncome:
		return "CI"
	case CashFlow:
		return "CF"
	default:
		return fmt.Sprintf("ReportType(%d)", int(t))
	}
}

// Payload is one fetched report: the resolved period, the period column
// labels, and the row matrix. Each row is [item_label, cell, cell, ...];
// the cell layout depends on the report type (see Normalize).
type Payload struct {
	Year   int
	Season int
	Dates  []string
	Rows   [][]string
}

// Fetcher retrieves raw report tables from the disclosure source. Transport
// failures abort the analysis run; the core does not retry.
type Fetcher interface {
	// FetchLatest returns the most recent available report of the given type.
	FetchLatest(ctx context.Context, reportType ReportType) (*Payload, error)
	// FetchPeriod returns the report for an explicit ROC year and season.
	FetchPeriod(ctx context.Context, reportType ReportType, year, season int) (*Payload, error)
}

// StructuralMismatchError reports a row with fewer cells than the column
// layout requires. Misaligned offsets would corrupt figures without any
// numeric signal, so normalization fails loudly instead of truncating.
type StructuralMismatchError struct {
	ReportType ReportType
	Item       string
	Offset     int
	RowLen     int
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("%s row %q: cell offset %d out of range (row has %d cells)",
		e.ReportType, e.Item, e.Offset, e.RowLen)
}
