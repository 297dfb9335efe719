package utils

import (
	"strings"
	"telehealth-service/internal/pkg/constvars"
	"time"
)

// ParseCalendarDate accepts either a full RFC3339 instant or a plain
// YYYY-MM-DD date, which is read as midnight UTC.
func ParseCalendarDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(constvars.TimeFormatYYYYMMDD, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ScheduledAt resolves the instant an appointment starts. A date without a
// clock component takes its hour and minute from clock when one is given.
func ScheduledAt(date time.Time, clock string) time.Time {
	date = date.UTC()
	if clock == "" || !isMidnight(date) {
		return date
	}
	hm, err := time.Parse(constvars.TimeFormatHHMM, clock)
	if err != nil {
		return date
	}
	return date.Add(time.Duration(hm.Hour())*time.Hour + time.Duration(hm.Minute())*time.Minute)
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
