// Package period parses MOPS report column labels into fiscal periods.
//
// MOPS labels use the ROC calendar and come in three shapes:
//   - "112年第2季" / "112年前3季"  (quarterly cumulative)
//   - "112年度"                    (full fiscal year)
//   - "112年12月31日"              (balance-sheet snapshot dates)
package period

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnrecognizedFormat is returned when a label matches none of the known
// MOPS period shapes.
var ErrUnrecognizedFormat = errors.New("unrecognized period label format")

// Period identifies one fiscal reporting period. Season 4 is the full year;
// seasons 1-3 are the year-to-date cumulative reports through Q1/Q2/Q3.
type Period struct {
	Year   int `json:"year"`
	Season int `json:"season"`
}

func (p Period) String() string {
	if p.Season == 4 {
		return fmt.Sprintf("%d年度", p.Year)
	}
	return fmt.Sprintf("%d年第%d季", p.Year, p.Season)
}

var (
	seasonRe = regexp.MustCompile(`(\d+)年(?:第|前)?(\d+)季`)
	annualRe = regexp.MustCompile(`(\d+)年度`)
	yearRe   = regexp.MustCompile(`(\d+)年`)
)

// snapshotSeasons maps balance-sheet snapshot dates to their season.
var snapshotSeasons = []struct {
	date   string
	season int
}{
	{"12月31日", 4},
	{"09月30日", 3},
	{"06月30日", 2},
	{"03月31日", 1},
}

// Parse converts a raw column label into a Period. Patterns are tried in
// precedence order: quarterly, annual, snapshot date. The first match wins.
func Parse(label string) (Period, error) {
	if m := seasonRe.FindStringSubmatch(label); m != nil {
		year, _ := strconv.Atoi(m[1])
		season, _ := strconv.Atoi(m[2])
		return Period{Year: year, Season: season}, nil
	}

	if m := annualRe.FindStringSubmatch(label); m != nil {
		year, _ := strconv.Atoi(m[1])
		return Period{Year: year, Season: 4}, nil
	}

	for _, s := range snapshotSeasons {
		if strings.Contains(label, s.date) {
			if m := yearRe.FindStringSubmatch(label); m != nil {
				year, _ := strconv.Atoi(m[1])
				return Period{Year: year, Season: s.season}, nil
			}
		}
	}

	return Period{}, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, label)
}
