package wallclock_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

func TestParseClock(t *testing.T) {
	c, err := wallclock.ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, 9, c.Hour())
	assert.Equal(t, 5, c.Minute())
	assert.Equal(t, "09:05", c.String())

	_, err = wallclock.ParseClock("25:00")
	assert.Error(t, err)

	_, err = wallclock.ParseClock("")
	assert.Error(t, err)
}

func TestClockScan(t *testing.T) {
	var c wallclock.Clock

	require.NoError(t, c.Scan("10:30"))
	assert.Equal(t, wallclock.NewClock(10, 30), c)

	require.NoError(t, c.Scan([]byte("14:15:00")))
	assert.Equal(t, wallclock.NewClock(14, 15), c)

	assert.Error(t, c.Scan(42))
}

func TestDateCompare(t *testing.T) {
	a, err := wallclock.ParseDate("2024-05-01")
	require.NoError(t, err)
	b, err := wallclock.ParseDate("2024-05-02")
	require.NoError(t, err)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, b, a.AddDays(1))
	assert.Equal(t, "2024-06-01", a.AddDays(31).String())
}

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	instant := time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-05-02", wallclock.DateOf(instant).String())
	assert.Equal(t, "2024-05-01", wallclock.DateOf(instant.In(loc)).String())
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Due wallclock.Date  `json:"due"`
		At  wallclock.Clock `json:"at"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-05-01","at":"10:00"}`), &p))
	assert.Equal(t, wallclock.Date{Year: 2024, Month: time.May, Day: 1}, p.Due)
	assert.Equal(t, wallclock.NewClock(10, 0), p.At)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-05-01","at":"10:00"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"due":"01/05/2024"}`), &p))
}

func TestIntervalOverlaps(t *testing.T) {
	iv := func(s, e string) wallclock.Interval {
		start, err := wallclock.ParseClock(s)
		require.NoError(t, err)
		end, err := wallclock.ParseClock(e)
		require.NoError(t, err)
		out, err := wallclock.NewInterval(start, end)
		require.NoError(t, err)
		return out
	}

	tests := []struct {
		name string
		a, b wallclock.Interval
		want bool
	}{
		{"partial overlap", iv("10:00", "11:00"), iv("10:30", "11:30"), true},
		{"containment", iv("09:00", "12:00"), iv("10:00", "11:00"), true},
		{"contained", iv("10:00", "11:00"), iv("09:00", "12:00"), true},
		{"identical", iv("10:00", "11:00"), iv("10:00", "11:00"), true},
		{"touching after", iv("10:00", "11:00"), iv("11:00", "12:00"), false},
		{"touching before", iv("11:00", "12:00"), iv("10:00", "11:00"), false},
		{"disjoint", iv("08:00", "09:00"), iv("10:00", "11:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestNewIntervalRejectsEmpty(t *testing.T) {
	_, err := wallclock.NewInterval(wallclock.NewClock(10, 0), wallclock.NewClock(10, 0))
	assert.ErrorIs(t, err, wallclock.ErrEmptyInterval)

	_, err = wallclock.NewInterval(wallclock.NewClock(11, 0), wallclock.NewClock(10, 0))
	assert.ErrorIs(t, err, wallclock.ErrEmptyInterval)
}
