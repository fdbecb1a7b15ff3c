// Package analysis exposes the full health check over HTTP.
package analysis

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"mops_advisor/pkg/core/advisor"
	coreanalysis "mops_advisor/pkg/core/analysis"
	"mops_advisor/pkg/core/utils"
)

// SourceFactory builds the disclosure/market collaborator for one stock
// code. Production wires mops.NewClient; tests inject fakes.
type SourceFactory func(stockCode string) coreanalysis.Source

type Handler struct {
	provider  advisor.Provider
	newSource SourceFactory
}

func NewHandler(provider advisor.Provider, newSource SourceFactory) *Handler {
	return &Handler{provider: provider, newSource: newSource}
}

type ReportRequest struct {
	StockCode string `json:"stock_code"`
}

type ReportResponse struct {
	RunID      string                    `json:"run_id"`
	StockCode  string                    `json:"stock_code"`
	Year       int                       `json:"year"`
	Season     int                       `json:"season"`
	ZScore     coreanalysis.ScoreOutcome `json:"z_score"`
	FScore     coreanalysis.ScoreOutcome `json:"f_score"`
	MScore     coreanalysis.ScoreOutcome `json:"m_score"`
	Report     string                    `json:"report,omitempty"`
	ReportHTML string                    `json:"report_html,omitempty"`
	ReportErr  string                    `json:"report_error,omitempty"`
	Verdict    *advisor.Verdict          `json:"verdict,omitempty"`
}

// HandleReport runs the whole pipeline for one stock code: nine TTM
// retrievals, the three calculators, and the advisory report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.StockCode == "" {
		http.Error(w, "stock_code is required", http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()
	fmt.Printf("[ANALYSIS] run %s: 股票代號 %s\n", runID, req.StockCode)

	result, err := coreanalysis.Run(r.Context(), req.StockCode, h.newSource(req.StockCode))
	if err != nil {
		http.Error(w, fmt.Sprintf("analysis failed: %v", err), http.StatusBadGateway)
		return
	}

	resp := ReportResponse{
		RunID:     runID,
		StockCode: result.StockCode,
		Year:      result.Year,
		Season:    result.Season,
		ZScore:    result.ZScore,
		FScore:    result.FScore,
		MScore:    result.MScore,
	}

	// The advisory report is best-effort: score data is still useful when
	// the model is unreachable.
	if h.provider != nil {
		if report, err := advisor.GenerateReport(r.Context(), h.provider, result.Records()); err != nil {
			resp.ReportErr = err.Error()
		} else {
			resp.Report = report
			if html, err := utils.RenderMarkdown(report); err == nil {
				resp.ReportHTML = html
			}
		}
		if verdict, err := advisor.GenerateVerdict(r.Context(), h.provider, result.Records()); err != nil {
			fmt.Printf("[ANALYSIS] run %s: verdict unavailable: %v\n", runID, err)
		} else {
			resp.Verdict = verdict
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		fmt.Printf("[ANALYSIS] run %s: response write failed: %v\n", runID, err)
	}
}
