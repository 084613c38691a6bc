package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30).
// All warehouses and dealers operate in IST, so every user-facing
// timestamp and every calendar-day filter bound is interpreted here.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// ToIST converts any time to IST
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// StartOfDay returns the start of day (00:00:00) in IST for the given time
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// EndOfDay returns the end of day (23:59:59.999999999) in IST for the
// given time. Calendar-day filter bounds are widened through this before
// they reach the date-range matcher, which compares full instants only.
func EndOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 23, 59, 59, 999999999, IST)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
