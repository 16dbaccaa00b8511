package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/caffio-app/caffio-api/models"
)

// IsOpen reports whether a cafe with the given schedule is open at now.
// The weekday is resolved in now's location with the day boundary at local
// midnight. A missing or disabled entry means closed. The window is half-open:
// open at "open" exactly, closed at "close" exactly.
//
// Overnight windows (close earlier than open, e.g. 22:00-02:00) are not
// supported: the minutes are compared as given, so such a window evaluates
// closed at all times.
func IsOpen(hours models.BusinessHours, now time.Time) bool {
	if hours == nil {
		return false
	}

	day := strings.ToLower(now.Weekday().String())
	window, ok := hours[day]
	if !ok || !window.Enabled {
		return false
	}

	openMinutes, ok := parseClock(window.Open)
	if !ok {
		return false
	}
	closeMinutes, ok := parseClock(window.Close)
	if !ok {
		return false
	}

	currentMinutes := now.Hour()*60 + now.Minute()
	return openMinutes <= currentMinutes && currentMinutes < closeMinutes
}

// parseClock parses "HH:MM" into minutes since midnight
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
