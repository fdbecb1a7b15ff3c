// Package analysis runs one full health check for a stock code: three
// report types across three fiscal years into TTM snapshots, then the
// Z/F/M calculators.
package analysis

import (
	"context"
	"fmt"
	"log"

	"mops_advisor/pkg/core/score"
	"mops_advisor/pkg/core/statement"
)

// Source is everything the engine needs from the disclosure and market
// collaborators. *mops.Client satisfies it.
type Source interface {
	statement.Fetcher
	MarketCap(ctx context.Context) (float64, error)
	IsNoNewShares(ctx context.Context) (bool, error)
}

// ScoreOutcome carries either a computed record or that score's failure.
// One score failing must not lose the other two.
type ScoreOutcome struct {
	Record *score.Record `json:"record,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Result is the outcome of one analysis run.
type Result struct {
	StockCode string       `json:"stock_code"`
	Year      int          `json:"year"`
	Season    int          `json:"season"`
	ZScore    ScoreOutcome `json:"z_score"`
	FScore    ScoreOutcome `json:"f_score"`
	MScore    ScoreOutcome `json:"m_score"`
}

// Records returns the successfully computed score records, in Z/F/M order.
func (r *Result) Records() []*score.Record {
	var records []*score.Record
	for _, outcome := range []ScoreOutcome{r.ZScore, r.FScore, r.MScore} {
		if outcome.Record != nil {
			records = append(records, outcome.Record)
		}
	}
	return records
}

var reportTypes = []statement.ReportType{
	statement.BalanceSheet,
	statement.ComprehensiveIncome,
	statement.CashFlow,
}

// Run executes the whole pipeline for one stock code. Fetch or
// normalization failures abort the run; score failures are local to the
// score and recorded on the result.
func Run(ctx context.Context, stockCode string, src Source) (*Result, error) {
	analyzer := statement.NewAnalyzer(src)

	// Latest period across all three report types. The resolved period is
	// shared: MOPS publishes the three statements for the same quarter.
	var year, season int
	for _, rt := range reportTypes {
		y, s, err := analyzer.RetrieveLatestTTM(ctx, rt)
		if err != nil {
			return nil, err
		}
		year, season = y, s
	}

	ttm := make(map[int]statement.Snapshot, 3)
	snapshot, err := analyzer.CalculateTTM(year, season)
	if err != nil {
		return nil, err
	}
	ttm[year] = snapshot

	// Two more years of history for F (and one for M).
	for offset := 1; offset <= 2; offset++ {
		for _, rt := range reportTypes {
			if err := analyzer.RetrieveTTM(ctx, rt, year-offset, season); err != nil {
				return nil, err
			}
		}
		snapshot, err := analyzer.CalculateTTM(year-offset, season)
		if err != nil {
			return nil, err
		}
		ttm[year-offset] = snapshot
	}

	result := &Result{StockCode: stockCode, Year: year, Season: season}
	calculator := score.NewCalculator(ttm, year)

	log.Println("[模型分析] 正在計算財務比率（Z-score）")
	if marketCap, err := src.MarketCap(ctx); err != nil {
		result.ZScore.Error = fmt.Sprintf("market cap lookup: %v", err)
	} else if record, err := calculator.CalculateZScore(marketCap); err != nil {
		result.ZScore.Error = err.Error()
	} else {
		result.ZScore.Record = record
	}

	log.Println("[模型分析] 正在計算財務比率（F-score）")
	if noNewShares, err := src.IsNoNewShares(ctx); err != nil {
		result.FScore.Error = fmt.Sprintf("share count lookup: %v", err)
	} else if record, err := calculator.CalculateFScore(noNewShares); err != nil {
		result.FScore.Error = err.Error()
	} else {
		result.FScore.Record = record
	}

	log.Println("[模型分析] 正在計算財務比率（M-score）")
	if record, err := calculator.CalculateMScore(); err != nil {
		result.MScore.Error = err.Error()
	} else {
		result.MScore.Record = record
	}

	return result, nil
}
