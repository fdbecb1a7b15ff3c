package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"mops_advisor/pkg/core/statement"
)

// fakeSource serves identical annual statements for every requested year,
// so TTM snapshots equal the raw figures and the M-Score collapses to its
// identical-years value.
type fakeSource struct {
	marketCap    float64
	marketCapErr error
	noNewShares  bool
}

func annualPayload(rt statement.ReportType, year int) *statement.Payload {
	date := fmt.Sprintf("%d年度", year)
	bsRows := [][]string{
		{"資產總額", "1,000", "100.00"},
		{"負債總額", "600", "60.00"},
		{"流動資產合計", "600", "60.00"},
		{"流動負債合計", "300", "30.00"},
		{"非流動資產合計", "400", "40.00"},
		{"非流動負債合計", "50", "5.00"},
		{"保留盈餘合計", "100", "10.00"},
		{"應收帳款淨額", "100", "10.00"},
		{"不動產、廠房及設備", "500", "50.00"},
	}
	ciRows := [][]string{
		{"營業收入合計", "1,000", "100.00"},
		{"營業成本合計", "350", "35.00"},
		{"營業毛利（毛損）", "300", "30.00"},
		{"本期稅前淨利（淨損）", "50", "5.00"},
		{"本期淨利（淨損）", "80", "8.00"},
		{"利息收入", "5", "0.50"},
		{"折舊費用", "50", "5.00"},
		{"攤銷費用", "5", "0.50"},
		{"推銷費用", "60", "6.00"},
		{"管理費用", "40", "4.00"},
	}
	cfRows := [][]string{
		{"營業活動之淨現金流入（流出）", "80"},
	}

	rows := bsRows
	switch rt {
	case statement.ComprehensiveIncome:
		rows = ciRows
	case statement.CashFlow:
		rows = cfRows
	}
	return &statement.Payload{Year: year, Season: 4, Dates: []string{date}, Rows: rows}
}

func (f *fakeSource) FetchLatest(_ context.Context, rt statement.ReportType) (*statement.Payload, error) {
	return annualPayload(rt, 112), nil
}

func (f *fakeSource) FetchPeriod(_ context.Context, rt statement.ReportType, year, _ int) (*statement.Payload, error) {
	return annualPayload(rt, year), nil
}

func (f *fakeSource) MarketCap(context.Context) (float64, error) {
	return f.marketCap, f.marketCapErr
}

func (f *fakeSource) IsNoNewShares(context.Context) (bool, error) {
	return f.noNewShares, nil
}

func scoreValue(t *testing.T, outcome ScoreOutcome, label string) any {
	t.Helper()
	if outcome.Record == nil {
		t.Fatalf("score failed: %s", outcome.Error)
	}
	for _, e := range outcome.Record.Entries {
		if e.Label == label {
			return e.Value
		}
	}
	t.Fatalf("no entry %q", label)
	return nil
}

func TestRunFullPipeline(t *testing.T) {
	src := &fakeSource{marketCap: 2_000_000, noNewShares: true}

	result, err := Run(context.Background(), "2330", src)
	if err != nil {
		t.Fatal(err)
	}
	if result.Year != 112 || result.Season != 4 {
		t.Errorf("resolved period = %d/%d, want 112/4", result.Year, result.Season)
	}

	// Z: A=0.3 B=0.1 C=0.11 D=2000/600 E=1.0 -> 3.86
	if got := scoreValue(t, result.ZScore, "Z-score"); got != 3.86 {
		t.Errorf("Z-score = %v, want 3.86", got)
	}

	// Identical years: only ROA>0, CFO>0 and the no-new-shares signal hold.
	if got := scoreValue(t, result.FScore, "F-score"); got != 3 {
		t.Errorf("F-score = %v, want 3", got)
	}

	// Identical years with NI == CFO.
	if got := scoreValue(t, result.MScore, "M-score"); got != -2.48 {
		t.Errorf("M-score = %v, want -2.48", got)
	}

	if len(result.Records()) != 3 {
		t.Errorf("Records() len = %d, want 3", len(result.Records()))
	}
}

func TestRunScoreFailureIsLocal(t *testing.T) {
	src := &fakeSource{marketCapErr: errors.New("quote source down"), noNewShares: true}

	result, err := Run(context.Background(), "2330", src)
	if err != nil {
		t.Fatal(err)
	}
	if result.ZScore.Error == "" || result.ZScore.Record != nil {
		t.Errorf("ZScore outcome = %+v, want recorded failure", result.ZScore)
	}
	if result.FScore.Record == nil || result.MScore.Record == nil {
		t.Error("F/M scores should survive a Z failure")
	}
	if len(result.Records()) != 2 {
		t.Errorf("Records() len = %d, want 2", len(result.Records()))
	}
}
