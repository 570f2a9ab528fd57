package tariff

import (
	"time"
)

// Window is an inclusive validity interval at day granularity. A nil until
// means open-ended.
type Window struct {
	from  time.Time
	until *time.Time
}

// NewWindow validates the range before any overlap logic runs: a malformed
// range is a validation error, not a conflict.
func NewWindow(from time.Time, until *time.Time) (Window, error) {
	if from.IsZero() {
		return Window{}, ErrMissingValidFrom
	}
	fromDay := truncateToDay(from)
	if until == nil {
		return Window{from: fromDay}, nil
	}
	untilDay := truncateToDay(*until)
	if untilDay.Before(fromDay) {
		return Window{}, ErrInvalidWindow
	}
	return Window{from: fromDay, until: &untilDay}, nil
}

// MustWindow is for literals in tests and seeds.
func MustWindow(from time.Time, until *time.Time) Window {
	w, err := NewWindow(from, until)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Window) From() time.Time { return w.from }

func (w Window) Until() *time.Time {
	if w.until == nil {
		return nil
	}
	u := *w.until
	return &u
}

func (w Window) OpenEnded() bool { return w.until == nil }

func (w Window) Contains(d time.Time) bool {
	day := truncateToDay(d)
	if day.Before(w.from) {
		return false
	}
	if w.until == nil {
		return true
	}
	return !day.After(*w.until)
}

// Overlaps reports whether two inclusive intervals intersect, treating a nil
// end as +infinity: [a1,a2] and [b1,b2] overlap iff a1 <= b2 && b1 <= a2.
func (w Window) Overlaps(o Window) bool {
	if o.until != nil && w.from.After(*o.until) {
		return false
	}
	if w.until != nil && o.from.After(*w.until) {
		return false
	}
	return true
}

// ExpiredBy reports whether the window ended strictly before the given day.
func (w Window) ExpiredBy(d time.Time) bool {
	if w.until == nil {
		return false
	}
	return w.until.Before(truncateToDay(d))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
