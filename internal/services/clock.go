package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClockTime parses "HH:MM" or "HH:MM:SS" into an hour/minute
// pair. Seconds, when present, are accepted and discarded: slots are
// modeled at minute resolution.
func ParseClockTime(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, ErrInvalidInput("invalid time, expected HH:MM")
	}
	hour, errH := strconv.Atoi(parts[0])
	minute, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidInput("invalid time, expected HH:MM")
	}
	if len(parts) == 3 {
		second, errS := strconv.Atoi(parts[2])
		if errS != nil || second < 0 || second > 59 {
			return 0, 0, ErrInvalidInput("invalid time, expected HH:MM")
		}
	}
	return hour, minute, nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form, normalized to
// UTC midnight.
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidInput("invalid date, expected YYYY-MM-DD")
	}
	return d, nil
}

// DateOnly strips the time-of-day from t, keeping the calendar date at
// UTC midnight. Appointment and invoice date columns always hold this
// normalized form so date equality is exact.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CombineDateTime builds the single comparable instant for a date plus
// clock time.
func CombineDateTime(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
}

// SlotKeyFor is the canonical occupied-slot identity for the unique
// index backing conflict detection.
func SlotKeyFor(clinicianID string, date time.Time, hour, minute int) string {
	return fmt.Sprintf("%s|%s|%02d:%02d", clinicianID, date.Format("2006-01-02"), hour, minute)
}

// ClockString formats a wall-clock instant as the HH:MM:SS form stored
// on session rows.
func ClockString(t time.Time) string {
	return t.Format("15:04:05")
}
