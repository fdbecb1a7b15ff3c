package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mops_advisor/pkg/core/period"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize writes every cell of one fetched report into the ledger.
//
// Column layouts differ by report type: BS and CI interleave a value column
// and a percentage column per period, so period i's value sits at cell
// offset i*2+1. CF has a single value column per period, offset i+1.
// Cell values carry thousands separators and padding spaces; cleaned-empty
// cells are skipped without writing an entry.
func Normalize(ledger *Ledger, reportType ReportType, dates []string, rows [][]string) error {
	periods := make([]period.Period, len(dates))
	for i, date := range dates {
		p, err := period.Parse(date)
		if err != nil {
			return fmt.Errorf("%s column %d: %w", reportType, i, err)
		}
		periods[i] = p
	}

	for _, row := range rows {
		var item string
		if len(row) > 0 {
			item = whitespaceRe.ReplaceAllString(row[0], "")
		}
		for i, p := range periods {
			offset := i*2 + 1
			if reportType == CashFlow {
				offset = i + 1
			}
			if offset >= len(row) {
				return &StructuralMismatchError{
					ReportType: reportType,
					Item:       item,
					Offset:     offset,
					RowLen:     len(row),
				}
			}
			cleaned := strings.NewReplacer(" ", "", ",", "").Replace(row[offset])
			if cleaned == "" {
				continue
			}
			amount, err := strconv.ParseFloat(cleaned, 64)
			if err != nil {
				return fmt.Errorf("%s row %q column %q: bad amount %q: %w",
					reportType, item, dates[i], row[offset], err)
			}
			ledger.Upsert(p.Year, p.Season, item, amount)
		}
	}
	return nil
}
