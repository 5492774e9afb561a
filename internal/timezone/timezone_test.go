package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/advocate-scheduler/internal/timezone"
)

func TestIsValid(t *testing.T) {
	assert.True(t, timezone.IsValid("UTC"))
	assert.False(t, timezone.IsValid(""))
	assert.False(t, timezone.IsValid("Mars/Olympus"))
}

func TestLocationFallsBack(t *testing.T) {
	assert.NotNil(t, timezone.Location("Mars/Olympus"))
	assert.Equal(t, "UTC", timezone.Location("UTC").String())
}

func TestFixedClockToday(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	c := timezone.Fixed(time.Date(2024, 5, 1, 22, 30, 0, 0, loc))

	assert.Equal(t, "2024-05-01", c.Today().String())
	assert.Equal(t, loc, c.Location())
}
