package mops

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ShareCount is one reading of the issued-share total from the
// shareholder-distribution page, together with the ROC year it covers.
type ShareCount struct {
	TotalShares int64
	Year        string
}

// fetchShareDistribution posts the t16sn02 query form. An empty year asks
// for the most recent disclosure.
func (c *Client) fetchShareDistribution(ctx context.Context, year string) (string, error) {
	form := url.Values{
		"encodeURIComponent": {"1"},
		"step":               {"1"},
		"firstin":            {"1"},
		"off":                {"1"},
		"keyword4":           {""},
		"code1":              {""},
		"TYPEK2":             {""},
		"checkbtn":           {""},
		"queryName":          {"co_id"},
		"t05st29_c_ifrs":     {"N"},
		"t05st30_c_ifrs":     {"N"},
		"inpuType":           {"co_id"},
		"TYPEK":              {"all"},
		"co_id":              {c.StockCode},
		"year":               {year},
	}
	if year == "" {
		form.Set("isnew", "true")
		form.Set("year", latestPeriodSentinel)
	} else {
		form.Set("isnew", "false")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.SharesURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("share distribution request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("share distribution page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ParseShareCount extracts the issued-share total and its year from the
// shareholder-distribution page. The total sits two cells to the right of
// the 實際發行總股數 label; the year is the Q2V form input.
func ParseShareCount(html string) (*ShareCount, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse share distribution page: %w", err)
	}

	label := doc.Find("td").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == "實際發行總股數"
	}).First()
	if label.Length() == 0 {
		return nil, fmt.Errorf("share distribution page has no 實際發行總股數 cell")
	}

	valueCell := label.Next().Next()
	if valueCell.Length() == 0 {
		return nil, fmt.Errorf("share distribution page missing the share-count cell")
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(valueCell.Text()), ",", "")
	total, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad share count %q: %w", valueCell.Text(), err)
	}

	year, ok := doc.Find(`input[name="Q2V"]`).Attr("value")
	if !ok {
		return nil, fmt.Errorf("share distribution page has no Q2V year input")
	}

	return &ShareCount{TotalShares: total, Year: year}, nil
}

// IsNoNewShares reports whether the issued-share total is unchanged from
// the prior year. This feeds the F-Score's sixth condition.
func (c *Client) IsNoNewShares(ctx context.Context) (bool, error) {
	html, err := c.fetchShareDistribution(ctx, "")
	if err != nil {
		return false, err
	}
	current, err := ParseShareCount(html)
	if err != nil {
		return false, err
	}

	year, err := strconv.Atoi(current.Year)
	if err != nil {
		return false, fmt.Errorf("share distribution year %q: %w", current.Year, err)
	}
	html, err = c.fetchShareDistribution(ctx, strconv.Itoa(year-1))
	if err != nil {
		return false, err
	}
	prior, err := ParseShareCount(html)
	if err != nil {
		return false, err
	}

	return current.TotalShares == prior.TotalShares, nil
}
