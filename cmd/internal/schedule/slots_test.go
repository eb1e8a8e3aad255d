package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlotsNearDate(t *testing.T) {
	now := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)

	for _, offset := range []int{0, 1, 2} {
		date := now.AddDate(0, 0, offset)
		slots := GenerateSlots(date, now)

		require.Len(t, slots, 16, "full 09:00-17:00 range for offset %d", offset)
		assert.Equal(t, "09:00", slots[0].Time)
		assert.Equal(t, "16:30", slots[len(slots)-1].Time)
	}
}

func TestGenerateSlotsFarDate(t *testing.T) {
	now := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 10)

	slots := GenerateSlots(date, now)

	require.Len(t, slots, 10, "narrowed 10:00-15:00 range")
	assert.Equal(t, "10:00", slots[0].Time)
	assert.Equal(t, "14:30", slots[len(slots)-1].Time)
}

func TestGenerateSlotsShape(t *testing.T) {
	now := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	slots := GenerateSlots(now, now)

	for i, slot := range slots {
		assert.Equal(t, "slot-"+slot.Time, slot.ID)
		assert.Equal(t, SlotMinutes, slot.Duration)
		if i > 0 {
			assert.Less(t, slots[i-1].Time, slot.Time, "slots are ordered")
		}
	}
}

func TestDisplayLabels(t *testing.T) {
	now := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	slots := GenerateSlots(now, now)

	byTime := map[string]string{}
	for _, slot := range slots {
		byTime[slot.Time] = slot.Display
	}

	assert.Equal(t, "9:00 AM", byTime["09:00"])
	assert.Equal(t, "11:30 AM", byTime["11:30"])
	assert.Equal(t, "12:00 PM", byTime["12:00"])
	assert.Equal(t, "1:00 PM", byTime["13:00"])
	assert.Equal(t, "4:30 PM", byTime["16:30"])
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	now := time.Date(2025, time.September, 1, 8, 15, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 1)

	assert.Equal(t, GenerateSlots(date, now), GenerateSlots(date, now))
}

func TestSlotStart(t *testing.T) {
	date := time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC)
	slot := TimeSlot{Time: "13:30"}

	start, err := SlotStart(date, slot)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.September, 3, 13, 30, 0, 0, time.UTC), start)

	_, err = SlotStart(date, TimeSlot{Time: "bogus"})
	assert.Error(t, err)
}
