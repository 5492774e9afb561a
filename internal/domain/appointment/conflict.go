package appointment

import (
	"sort"

	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

var ErrInvalidInterval = httperr.ErrBusiness("invalid_interval")

// ConflictQuery describes the slot an advocate wants to occupy. ExcludeID is
// the appointment being edited, so it never collides with itself.
type ConflictQuery struct {
	AdvocateID uint
	Date       wallclock.Date
	Start      wallclock.Clock
	End        wallclock.Clock
	ExcludeID  uint
}

func (q ConflictQuery) Interval() wallclock.Interval {
	return wallclock.Interval{Start: q.Start, End: q.End}
}

type ConflictResult struct {
	ConflictingIDs []uint `json:"conflicting_ids"`
}

func (r ConflictResult) HasConflict() bool {
	return len(r.ConflictingIDs) > 0
}

// Err turns a conflicting result into the time_conflict business error.
func (r ConflictResult) Err() error {
	if !r.HasConflict() {
		return nil
	}
	return httperr.ErrBusinessWith("time_conflict", map[string]any{
		"conflicting_ids": r.ConflictingIDs,
	})
}

// CheckConflict returns every appointment in existing that overlaps the
// requested slot. Rows for other advocates or dates and cancelled rows are
// ignored, so callers may pass a wider snapshot than strictly needed.
func CheckConflict(q ConflictQuery, existing []models.Appointment) (ConflictResult, error) {
	want := q.Interval()
	if !want.Valid() {
		return ConflictResult{}, ErrInvalidInterval
	}

	var hits []models.Appointment
	for _, ap := range existing {
		if ap.AdvocateID != q.AdvocateID || ap.Date != q.Date {
			continue
		}
		if Status(ap.Status) == StatusCancelled {
			continue
		}
		if q.ExcludeID != 0 && ap.ID == q.ExcludeID {
			continue
		}
		if want.Overlaps(ap.Interval()) {
			hits = append(hits, ap)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].StartTime != hits[j].StartTime {
			return hits[i].StartTime < hits[j].StartTime
		}
		return hits[i].ID < hits[j].ID
	})

	ids := make([]uint, 0, len(hits))
	for _, ap := range hits {
		ids = append(ids, ap.ID)
	}

	if len(ids) == 0 {
		return ConflictResult{}, nil
	}
	return ConflictResult{ConflictingIDs: ids}, nil
}
