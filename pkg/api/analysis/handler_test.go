package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	coreanalysis "mops_advisor/pkg/core/analysis"
	"mops_advisor/pkg/core/statement"
)

// fakeSource answers every request with the same annual statements, so
// the handler test exercises the full pipeline without the network.
type fakeSource struct{}

func fixturePayload(rt statement.ReportType, year int) *statement.Payload {
	date := fmt.Sprintf("%d年度", year)
	rows := [][]string{
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
	switch rt {
	case statement.ComprehensiveIncome:
		rows = [][]string{
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
	case statement.CashFlow:
		rows = [][]string{{"營業活動之淨現金流入（流出）", "80"}}
	}
	return &statement.Payload{Year: year, Season: 4, Dates: []string{date}, Rows: rows}
}

func (fakeSource) FetchLatest(_ context.Context, rt statement.ReportType) (*statement.Payload, error) {
	return fixturePayload(rt, 112), nil
}

func (fakeSource) FetchPeriod(_ context.Context, rt statement.ReportType, year, _ int) (*statement.Payload, error) {
	return fixturePayload(rt, year), nil
}

func (fakeSource) MarketCap(context.Context) (float64, error) { return 2_000_000, nil }

func (fakeSource) IsNoNewShares(context.Context) (bool, error) { return true, nil }

type stubProvider struct {
	reply        string
	verdictReply string
	err          error
}

func (s *stubProvider) GenerateResponse(_ context.Context, prompt string, _ string, _ map[string]interface{}) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if strings.Contains(prompt, "JSON") && s.verdictReply != "" {
		return s.verdictReply, nil
	}
	return s.reply, nil
}

func newTestHandler(p *stubProvider) *Handler {
	return NewHandler(p, func(string) coreanalysis.Source { return fakeSource{} })
}

func postReport(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis/report", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.HandleReport(rec, req)
	return rec
}

func TestHandleReport(t *testing.T) {
	h := newTestHandler(&stubProvider{
		reply: "# 分析\n\n財務體質穩健。",
		// Trailing comma: exercises the lenient decode path.
		verdictReply: `{"outlook": "穩健", "risks": "無重大風險",}`,
	})

	rec := postReport(t, h, `{"stock_code":"2330"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RunID == "" {
		t.Error("missing run_id")
	}
	if resp.StockCode != "2330" || resp.Year != 112 || resp.Season != 4 {
		t.Errorf("resolved %s %d/%d, want 2330 112/4", resp.StockCode, resp.Year, resp.Season)
	}
	for name, outcome := range map[string]coreanalysis.ScoreOutcome{
		"z": resp.ZScore, "f": resp.FScore, "m": resp.MScore,
	} {
		if outcome.Record == nil {
			t.Errorf("%s-score missing: %s", name, outcome.Error)
		}
	}
	if !strings.Contains(resp.Report, "財務體質穩健") {
		t.Errorf("report = %q", resp.Report)
	}
	if !strings.Contains(resp.ReportHTML, "<h1") {
		t.Errorf("report_html = %q", resp.ReportHTML)
	}
	if resp.Verdict == nil || resp.Verdict.Outlook != "穩健" || resp.Verdict.Risks != "無重大風險" {
		t.Errorf("verdict = %+v", resp.Verdict)
	}
}

func TestHandleReportProviderFailure(t *testing.T) {
	h := newTestHandler(&stubProvider{err: fmt.Errorf("model unreachable")})

	rec := postReport(t, h, `{"stock_code":"2330"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Report != "" {
		t.Errorf("report = %q, want empty", resp.Report)
	}
	if !strings.Contains(resp.ReportErr, "model unreachable") {
		t.Errorf("report_error = %q", resp.ReportErr)
	}
	if resp.Verdict != nil {
		t.Errorf("verdict = %+v, want none", resp.Verdict)
	}
	if resp.ZScore.Record == nil {
		t.Error("scores should survive a model failure")
	}
}

func TestHandleReportBadRequests(t *testing.T) {
	h := newTestHandler(&stubProvider{reply: "ok"})

	if rec := postReport(t, h, `{`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d", rec.Code)
	}
	if rec := postReport(t, h, `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing stock_code: status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/report", nil)
	rec := httptest.NewRecorder()
	h.HandleReport(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/analysis/report", nil)
	rec = httptest.NewRecorder()
	h.HandleReport(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS preflight: status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS origin = %q", got)
	}
}
