package period

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		label  string
		year   int
		season int
	}{
		{"112年第2季", 112, 2},
		{"112年前3季", 112, 3},
		{"113年第1季", 113, 1},
		{"112年度", 112, 4},
		{"112年12月31日", 112, 4},
		{"112年09月30日", 112, 3},
		{"111年06月30日", 111, 2},
		{"113年03月31日", 113, 1},
		// Quarterly pattern takes precedence over the bare-year fallback.
		{"民國112年第4季", 112, 4},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			p, err := Parse(tt.label)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.label, err)
			}
			if p.Year != tt.year || p.Season != tt.season {
				t.Errorf("Parse(%q) = (%d, %d), want (%d, %d)",
					tt.label, p.Year, p.Season, tt.year, tt.season)
			}
		})
	}
}

func TestParseUnrecognized(t *testing.T) {
	for _, label := range []string{"", "會計項目", "2023-Q2", "112"} {
		_, err := Parse(label)
		if !errors.Is(err, ErrUnrecognizedFormat) {
			t.Errorf("Parse(%q) err = %v, want ErrUnrecognizedFormat", label, err)
		}
	}
}

func TestPeriodString(t *testing.T) {
	if s := (Period{Year: 112, Season: 4}).String(); s != "112年度" {
		t.Errorf("annual String() = %q", s)
	}
	if s := (Period{Year: 112, Season: 2}).String(); s != "112年第2季" {
		t.Errorf("quarterly String() = %q", s)
	}
}
