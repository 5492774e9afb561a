package wallclock

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const clockLayout = "15:04"

// Clock is a wall-clock time of day with minute precision, stored as
// minutes since midnight. It carries no date and no timezone.
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock reads an "HH:MM" value.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("wallclock: invalid clock %q: %w", s, err)
	}
	return NewClock(t.Hour(), t.Minute()), nil
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) Before(o Clock) bool { return c < o }
func (c Clock) After(o Clock) bool  { return c > o }

func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return c.parseInto(v)
	case []byte:
		return c.parseInto(string(v))
	case time.Time:
		*c = NewClock(v.Hour(), v.Minute())
		return nil
	case nil:
		*c = 0
		return nil
	default:
		return fmt.Errorf("wallclock: cannot scan %T into Clock", src)
	}
}

func (c *Clock) parseInto(s string) error {
	// postgres renders time columns as HH:MM:SS
	if len(s) > len(clockLayout) {
		s = s[:len(clockLayout)]
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
