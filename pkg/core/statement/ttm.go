package statement

import "fmt"

// Snapshot is a flat item->amount view for one trailing-twelve-month
// window. It is derived on demand and carries no identity of its own.
type Snapshot map[string]float64

// CalculateTTM reduces the ledger to a trailing-twelve-month snapshot for
// the requested period. Season 4 entries are full-year figures already and
// pass through unchanged. For season S < 4 the rolling total telescopes out
// of the cumulative disclosures:
//
//	ttm = ytd(Y, S) + ytd(Y-1, S+1) - ytd(Y-1, S)
//
// Missing terms default to zero so that a line item absent from one period
// (a newly introduced account, say) does not abort the whole computation;
// callers should know this can quietly shift the reconstructed value.
func (l *Ledger) CalculateTTM(year, season int) (Snapshot, error) {
	items := l.Items(year, season)
	if len(items) == 0 {
		return nil, fmt.Errorf("no ledger entries for %d年 season %d", year, season)
	}

	snapshot := make(Snapshot, len(items))
	for _, item := range items {
		if season == 4 {
			snapshot[item] = l.LookupOrZero(year, 4, item)
			continue
		}
		current := l.LookupOrZero(year, season, item)
		priorRemainder := l.LookupOrZero(year-1, season+1, item)
		priorSameSeason := l.LookupOrZero(year-1, season, item)
		snapshot[item] = current + priorRemainder - priorSameSeason
	}
	return snapshot, nil
}
