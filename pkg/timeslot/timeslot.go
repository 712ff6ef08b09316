// Package timeslot derives concrete end timestamps from human-entered
// time-slot labels such as "10:00 AM - 12:00 PM" or "10:00-12:00".
package timeslot

import (
	"errors"
	"strings"
	"time"
)

// ErrUnparseableSlot is returned when no recognized format matches the
// slot label or its date.
var ErrUnparseableSlot = errors.New("unparseable time slot")

const dateLayout = "2006-01-02"

// endLayouts are tried in order against the END segment of the range.
// 12-hour with meridiem, 24-hour, hour-only 12-hour, compact 24-hour.
var endLayouts = []string{"3:04 PM", "15:04", "3 PM", "1504"}

// ParseEndTime parses a slot label of the form "START-END" together with a
// YYYY-MM-DD date and returns the absolute end timestamp of the window in
// local time. Only the END segment is inspected; the function does not
// verify that END > START.
func ParseEndTime(date, slot string) (time.Time, error) {
	if slot == "" {
		return time.Time{}, ErrUnparseableSlot
	}

	parts := strings.Split(slot, "-")
	if len(parts) < 2 {
		return time.Time{}, ErrUnparseableSlot
	}
	end := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))

	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, ErrUnparseableSlot
	}

	for _, layout := range endLayouts {
		if t, err := time.Parse(layout, end); err == nil {
			return combine(day, t), nil
		}
	}

	// Last resort: meridiem glued to the time, e.g. "10:00AM".
	compact := strings.ReplaceAll(end, " ", "")
	if t, err := time.Parse("3:04PM", compact); err == nil {
		return combine(day, t), nil
	}

	return time.Time{}, ErrUnparseableSlot
}

func combine(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
}
