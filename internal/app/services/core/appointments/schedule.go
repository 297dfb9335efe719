package appointments

import (
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"time"
)

const day = 24 * time.Hour

func hasClock(t time.Time) bool {
	t = t.UTC()
	return t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0
}

// isInPast compares instants when a clock is known. A bare calendar date is
// only in the past once its whole day has passed.
func isInPast(scheduled time.Time, clockKnown bool, now time.Time) bool {
	if !clockKnown {
		return scheduled.Before(now.UTC().Truncate(day))
	}
	return scheduled.Before(now)
}

// checkCreateWindow only rejects dates in the past.
func checkCreateWindow(scheduled time.Time, clockKnown bool, now time.Time) error {
	if isInPast(scheduled, clockKnown, now) {
		return exceptions.ErrAppointmentDateInPast(nil, scheduled.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	return nil
}

// checkRescheduleWindow accepts [now, now+30 days], both ends inclusive. When
// the caller picked a calendar day instead of an instant, the upper bound is
// compared by day so the thirtieth day is accepted at any hour.
func checkRescheduleWindow(scheduled time.Time, clockKnown, dayPicked bool, now time.Time) error {
	if err := checkCreateWindow(scheduled, clockKnown, now); err != nil {
		return err
	}
	windowEnd := now.Add(constvars.AppointmentRescheduleWindowDays * day)
	tooFar := scheduled.After(windowEnd)
	if dayPicked {
		tooFar = scheduled.UTC().Truncate(day).After(windowEnd.UTC().Truncate(day))
	}
	if tooFar {
		return exceptions.ErrAppointmentDateTooFar(nil, scheduled.Format(time.RFC3339), windowEnd.Format(time.RFC3339))
	}
	return nil
}
