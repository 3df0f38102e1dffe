package statement

import (
	"statements/internal/core"
)

// Period is an optional inclusive date window for a statement. An absent
// bound means the window is open on that side; the zero Period covers
// every row regardless of date.
type Period struct {
	From core.Date
	To   core.Date
}

// IsZero reports whether no bound is set.
func (p Period) IsZero() bool {
	return p.From.IsAbsent() && p.To.IsAbsent()
}

// Validate rejects a window whose start falls after its end. It runs
// before any aggregation so a bad request never reaches the pipeline.
func (p Period) Validate() error {
	if !p.From.IsAbsent() && !p.To.IsAbsent() && p.From.After(p.To.Time) {
		return core.ErrInvalidPeriod
	}
	return nil
}

// Contains reports whether a row with the given invoice date belongs to
// the window. Rows without a usable date only belong to the unbounded
// window.
func (p Period) Contains(d core.Date) bool {
	if d.IsAbsent() {
		return p.IsZero()
	}
	if !p.From.IsAbsent() && d.Before(p.From.Time) {
		return false
	}
	if !p.To.IsAbsent() && d.After(p.To.Time) {
		return false
	}
	return true
}
