package wallclock

import "errors"

var ErrEmptyInterval = errors.New("wallclock: interval start must be before end")

// Interval is the half-open range [Start, End) within a single day.
type Interval struct {
	Start Clock
	End   Clock
}

func NewInterval(start, end Clock) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, ErrEmptyInterval
	}
	return iv, nil
}

func (iv Interval) Valid() bool {
	return iv.Start < iv.End
}

// Overlaps reports whether the two ranges share at least one minute.
// Ranges that only touch at an endpoint do not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && o.Start < iv.End
}

func (iv Interval) Minutes() int {
	return int(iv.End - iv.Start)
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}
