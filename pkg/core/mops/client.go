// Package mops fetches corporate disclosures from Taiwan's Market
// Observation Post System (公開資訊觀測站) and related market data.
//
// Three JSON endpoints serve the statement tables:
//   - t164sb03: balance sheet
//   - t164sb04: comprehensive income
//   - t164sb05: cash flow
//
// The shareholder-distribution page (ajax_t16sn02) is HTML and is parsed
// with goquery.
package mops

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"mops_advisor/pkg/core/statement"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36 Edg/133.0.0.0"

	defaultAPIBaseURL    = "https://mops.twse.com.tw/mops/api"
	defaultSharesURL     = "https://mopsov.twse.com.tw/mops/web/ajax_t16sn02"
	defaultQuoteBaseURL  = "https://query1.finance.yahoo.com"
	accountItemColumn    = "會計項目"
	dataTypeLatest       = 1
	dataTypeExplicit     = 2
	latestPeriodSentinel = "LASTEST" // sic, the MOPS API expects this spelling
)

var statementEndpoints = map[statement.ReportType]string{
	statement.BalanceSheet:        "t164sb03",
	statement.ComprehensiveIncome: "t164sb04",
	statement.CashFlow:            "t164sb05",
}

// Client talks to MOPS for one stock code. It implements statement.Fetcher.
type Client struct {
	StockCode string

	// Overridable for tests.
	APIBaseURL   string
	SharesURL    string
	QuoteBaseURL string

	httpClient *http.Client
}

var _ statement.Fetcher = (*Client)(nil)

func NewClient(stockCode string) *Client {
	return &Client{
		StockCode:    stockCode,
		APIBaseURL:   defaultAPIBaseURL,
		SharesURL:    defaultSharesURL,
		QuoteBaseURL: defaultQuoteBaseURL,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
	}
}

type statementRequest struct {
	CompanyID           string `json:"companyId"`
	DataType            int    `json:"dataType"`
	Season              string `json:"season"`
	Year                string `json:"year"`
	SubsidiaryCompanyID string `json:"subsidiaryCompanyId"`
}

type statementResult struct {
	Year   string `json:"year"`
	Season string `json:"season"`
	Titles []struct {
		Main string `json:"main"`
	} `json:"titles"`
	ReportList [][]string `json:"reportList"`
}

type statementResponse struct {
	Result *statementResult `json:"result"`
}

// FetchLatest retrieves the most recent report of the given type.
func (c *Client) FetchLatest(ctx context.Context, reportType statement.ReportType) (*statement.Payload, error) {
	return c.fetch(ctx, reportType, statementRequest{
		CompanyID: c.StockCode,
		DataType:  dataTypeLatest,
		Season:    latestPeriodSentinel,
		Year:      latestPeriodSentinel,
	})
}

// FetchPeriod retrieves the report for an explicit ROC year and season.
func (c *Client) FetchPeriod(ctx context.Context, reportType statement.ReportType, year, season int) (*statement.Payload, error) {
	return c.fetch(ctx, reportType, statementRequest{
		CompanyID: c.StockCode,
		DataType:  dataTypeExplicit,
		Season:    strconv.Itoa(season),
		Year:      strconv.Itoa(year),
	})
}

func (c *Client) fetch(ctx context.Context, reportType statement.ReportType, reqBody statementRequest) (*statement.Payload, error) {
	endpoint, ok := statementEndpoints[reportType]
	if !ok {
		return nil, fmt.Errorf("no MOPS endpoint for report type %s", reportType)
	}
	fmt.Printf("[取得數據] 正在抓取股票 %s 的資料，報表類型: %s，年份: %s，季度: %s\n",
		c.StockCode, reportType, reqBody.Year, reqBody.Season)

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal MOPS request: %w", err)
	}

	url := c.APIBaseURL + "/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("MOPS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("MOPS returned status %d for %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded statementResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode MOPS response: %w", err)
	}
	if decoded.Result == nil {
		return nil, fmt.Errorf("MOPS response for %s has no result", reportType)
	}

	return payloadFromResult(decoded.Result)
}

// payloadFromResult converts the wire shape into the normalizer's input.
// Year and season arrive as strings on the wire.
func payloadFromResult(result *statementResult) (*statement.Payload, error) {
	year, err := strconv.Atoi(result.Year)
	if err != nil {
		return nil, fmt.Errorf("MOPS result year %q: %w", result.Year, err)
	}
	season, err := strconv.Atoi(result.Season)
	if err != nil {
		return nil, fmt.Errorf("MOPS result season %q: %w", result.Season, err)
	}

	dates := make([]string, 0, len(result.Titles))
	for _, title := range result.Titles {
		if title.Main == accountItemColumn {
			continue
		}
		dates = append(dates, title.Main)
	}

	return &statement.Payload{
		Year:   year,
		Season: season,
		Dates:  dates,
		Rows:   result.ReportList,
	}, nil
}
