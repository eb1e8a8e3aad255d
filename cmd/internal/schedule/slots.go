// Package schedule produces bookable appointment slots for a calendar date.
package schedule

import (
	"fmt"
	"time"
)

const SlotMinutes = 30

// TimeSlot is a candidate session start time. Slots are derived on demand and
// never persisted; the sequence is recomputed whenever the date changes.
type TimeSlot struct {
	ID       string `json:"id"`
	Time     string `json:"time"`
	Display  string `json:"display"`
	Duration int    `json:"duration"`
}

// GenerateSlots returns the ordered slots offered for date, given the current
// time. Operating hours are 09:00-17:00 in 30-minute steps. Within the next
// two calendar days the full range is offered; further out the range narrows
// to 10:00-15:00, on the assumption that near-term demand is higher and more
// capacity should be exposed close to the present. An empty result is a
// normal state, not an error.
func GenerateSlots(date, now time.Time) []TimeSlot {
	startHour, endHour := 9, 17
	if !isNearDate(date, now) {
		startHour, endHour = 10, 15
	}

	slots := make([]TimeSlot, 0, (endHour-startHour)*60/SlotMinutes)
	for hour := startHour; hour < endHour; hour++ {
		for minute := 0; minute < 60; minute += SlotMinutes {
			value := fmt.Sprintf("%02d:%02d", hour, minute)
			slots = append(slots, TimeSlot{
				ID:       "slot-" + value,
				Time:     value,
				Display:  displayLabel(hour, minute),
				Duration: SlotMinutes,
			})
		}
	}
	return slots
}

// SlotStart anchors a slot's time-of-day on the given calendar date.
func SlotStart(date time.Time, slot TimeSlot) (time.Time, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(slot.Time, "%d:%d", &hour, &minute); err != nil {
		return time.Time{}, fmt.Errorf("malformed slot time %q: %w", slot.Time, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

func isNearDate(date, now time.Time) bool {
	return sameDay(date, now) ||
		sameDay(date, now.AddDate(0, 0, 1)) ||
		sameDay(date, now.AddDate(0, 0, 2))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// displayLabel renders the 12-hour clock label, e.g. 13:00 -> "1:00 PM".
func displayLabel(hour, minute int) string {
	clockHour := hour % 12
	if clockHour == 0 {
		clockHour = 12
	}
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", clockHour, minute, meridiem)
}
