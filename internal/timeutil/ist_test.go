package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartAndEndOfDay(t *testing.T) {
	afternoon := time.Date(2026, 8, 10, 14, 30, 45, 0, IST)

	start := StartOfDay(afternoon)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, 10, start.Day())

	end := EndOfDay(afternoon)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.Equal(t, 10, end.Day())

	assert.True(t, start.Before(afternoon))
	assert.True(t, end.After(afternoon))
}

func TestEndOfDayCrossesTimezone(t *testing.T) {
	// 20:00 UTC on Aug 10 is already Aug 11 in IST; the day bound must
	// follow the IST calendar, not UTC's.
	utcEvening := time.Date(2026, 8, 10, 20, 0, 0, 0, time.UTC)

	end := EndOfDay(utcEvening)
	assert.Equal(t, 11, end.Day())
	assert.Equal(t, IST, end.Location())
}

func TestToIST(t *testing.T) {
	utc := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	ist := ToIST(utc)

	assert.Equal(t, 17, ist.Hour())
	assert.Equal(t, 30, ist.Minute())
	assert.True(t, utc.Equal(ist), "conversion keeps the instant")
}
