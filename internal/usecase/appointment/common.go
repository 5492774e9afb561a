package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

var errInvalidDateOrTime = httperr.ErrBusiness("invalid_date_or_time")

// calendarGuard serializes calendar writes of one advocate: a keyed lock
// across goroutines and instances, then a transaction holding the advocate
// row lock around the read-check-write.
type calendarGuard struct {
	repo   domain.Repository
	locker lock.Locker
}

func (g calendarGuard) run(
	ctx context.Context,
	advocateID uint,
	fn func(tx domain.Repository) error,
) error {

	unlock, err := g.locker.Lock(ctx, lock.AdvocateKey(advocateID))
	if err != nil {
		return err
	}
	defer unlock()

	return g.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockAdvocate(ctx, advocateID); err != nil {
			return err
		}
		return fn(tx)
	})
}

// parseSlot reads the "YYYY-MM-DD" / "HH:MM" triple sent by clients.
func parseSlot(date, start, end string) (wallclock.Date, wallclock.Interval, error) {
	d, err := wallclock.ParseDate(date)
	if err != nil {
		return wallclock.Date{}, wallclock.Interval{}, errInvalidDateOrTime
	}

	s, err := wallclock.ParseClock(start)
	if err != nil {
		return wallclock.Date{}, wallclock.Interval{}, errInvalidDateOrTime
	}

	e, err := wallclock.ParseClock(end)
	if err != nil {
		return wallclock.Date{}, wallclock.Interval{}, errInvalidDateOrTime
	}

	iv := wallclock.Interval{Start: s, End: e}
	if !iv.Valid() {
		return wallclock.Date{}, wallclock.Interval{}, domain.ErrInvalidInterval
	}

	return d, iv, nil
}
