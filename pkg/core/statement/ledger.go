package statement

import "sort"

// periodKey indexes one fiscal period inside the ledger.
type periodKey struct {
	Year   int
	Season int
}

// Ledger is the accumulating store of parsed line-item amounts, keyed by
// (year, season, item). For a fixed period each item maps to exactly one
// amount; re-insertion overwrites. Shared line items repeated across report
// types rely on that last-write-wins rule. A Ledger belongs to exactly one
// analysis run and must not be shared between concurrent callers.
type Ledger struct {
	entries map[periodKey]map[string]float64
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[periodKey]map[string]float64)}
}

// Upsert writes one amount, replacing any previous value for the same key.
func (l *Ledger) Upsert(year, season int, item string, amount float64) {
	key := periodKey{Year: year, Season: season}
	items, ok := l.entries[key]
	if !ok {
		items = make(map[string]float64)
		l.entries[key] = items
	}
	items[item] = amount
}

// Lookup returns the amount stored under (year, season, item), reporting
// whether an entry exists.
func (l *Ledger) Lookup(year, season int, item string) (float64, bool) {
	items, ok := l.entries[periodKey{Year: year, Season: season}]
	if !ok {
		return 0, false
	}
	amount, ok := items[item]
	return amount, ok
}

// LookupOrZero returns the stored amount, or 0 when the entry is absent.
// TTM reconstruction depends on this leniency for sparse disclosures.
func (l *Ledger) LookupOrZero(year, season int, item string) float64 {
	amount, _ := l.Lookup(year, season, item)
	return amount
}

// Items returns all item names recorded under one period, sorted for
// deterministic iteration.
func (l *Ledger) Items(year, season int) []string {
	items := l.entries[periodKey{Year: year, Season: season}]
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the total number of entries across all periods.
func (l *Ledger) Len() int {
	n := 0
	for _, items := range l.entries {
		n += len(items)
	}
	return n
}
