package statement

import (
	"context"
	"fmt"
	"log"
)

// Analyzer drives the fetch+normalize sequence for one analysis run and
// owns the resulting ledger. One Analyzer per run; never shared.
type Analyzer struct {
	fetcher Fetcher
	ledger  *Ledger

	// Year and Season hold the latest resolved period after the first
	// RetrieveLatestTTM call.
	Year   int
	Season int
}

func NewAnalyzer(fetcher Fetcher) *Analyzer {
	return &Analyzer{fetcher: fetcher, ledger: NewLedger()}
}

// Ledger exposes the accumulated entries for TTM computation.
func (a *Analyzer) Ledger() *Ledger {
	return a.ledger
}

// RetrieveLatestTTM fetches the most recent report of the given type,
// backfills the periods its TTM reconstruction needs, and records the
// resolved period on the Analyzer. It returns the resolved (year, season).
func (a *Analyzer) RetrieveLatestTTM(ctx context.Context, reportType ReportType) (int, int, error) {
	payload, err := a.fetcher.FetchLatest(ctx, reportType)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch latest %s: %w", reportType, err)
	}
	if err := a.ingest(reportType, payload); err != nil {
		return 0, 0, err
	}
	if err := a.backfill(ctx, reportType, payload.Year, payload.Season); err != nil {
		return 0, 0, err
	}
	a.Year = payload.Year
	a.Season = payload.Season
	return payload.Year, payload.Season, nil
}

// RetrieveTTM is the explicit-period variant used for the prior-year runs.
func (a *Analyzer) RetrieveTTM(ctx context.Context, reportType ReportType, year, season int) error {
	payload, err := a.fetcher.FetchPeriod(ctx, reportType, year, season)
	if err != nil {
		return fmt.Errorf("fetch %s %d/%d: %w", reportType, year, season, err)
	}
	if err := a.ingest(reportType, payload); err != nil {
		return err
	}
	return a.backfill(ctx, reportType, payload.Year, payload.Season)
}

// backfill fetches the extra periods one TTM computation needs. A non-Q4
// period always needs the prior-year same-season report. Income and cash
// flow figures are cumulative within the year, so they additionally need
// the prior full-year report; balance-sheet lines are point-in-time
// snapshots and skip that third fetch.
func (a *Analyzer) backfill(ctx context.Context, reportType ReportType, year, season int) error {
	if season == 4 {
		return nil
	}
	if err := a.fetchAndIngest(ctx, reportType, year-1, season); err != nil {
		return err
	}
	if reportType == ComprehensiveIncome || reportType == CashFlow {
		if err := a.fetchAndIngest(ctx, reportType, year-1, 4); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) fetchAndIngest(ctx context.Context, reportType ReportType, year, season int) error {
	payload, err := a.fetcher.FetchPeriod(ctx, reportType, year, season)
	if err != nil {
		return fmt.Errorf("fetch %s %d/%d: %w", reportType, year, season, err)
	}
	return a.ingest(reportType, payload)
}

func (a *Analyzer) ingest(reportType ReportType, payload *Payload) error {
	log.Printf("[整理數據] 解析 %s 報表 %d年 第%d季 (%d 列)",
		reportType, payload.Year, payload.Season, len(payload.Rows))
	if err := Normalize(a.ledger, reportType, payload.Dates, payload.Rows); err != nil {
		return fmt.Errorf("normalize %s %d/%d: %w", reportType, payload.Year, payload.Season, err)
	}
	return nil
}

// CalculateTTM derives the trailing-twelve-month snapshot for one period
// from the accumulated ledger.
func (a *Analyzer) CalculateTTM(year, season int) (Snapshot, error) {
	return a.ledger.CalculateTTM(year, season)
}
