package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchedule(t *testing.T) {
	valid := []DaySchedule{
		{Day: time.Monday, Active: true, Blocks: []WorkingBlock{{Start: 540, End: 720}, {Start: 780, End: 1020}}},
		{Day: time.Saturday, Active: false},
	}
	assert.NoError(t, ValidateSchedule(valid))
	assert.NoError(t, ValidateSchedule(nil))

	cases := []struct {
		name     string
		schedule []DaySchedule
	}{
		{
			"start after end",
			[]DaySchedule{{Day: time.Monday, Blocks: []WorkingBlock{{Start: 720, End: 540}}}},
		},
		{
			"empty block",
			[]DaySchedule{{Day: time.Monday, Blocks: []WorkingBlock{{Start: 540, End: 540}}}},
		},
		{
			"overlapping blocks",
			[]DaySchedule{{Day: time.Monday, Blocks: []WorkingBlock{{Start: 540, End: 720}, {Start: 700, End: 800}}}},
		},
		{
			"block past midnight",
			[]DaySchedule{{Day: time.Monday, Blocks: []WorkingBlock{{Start: 1380, End: 1500}}}},
		},
		{
			"negative start",
			[]DaySchedule{{Day: time.Monday, Blocks: []WorkingBlock{{Start: -10, End: 60}}}},
		},
		{
			"duplicate day",
			[]DaySchedule{
				{Day: time.Monday, Blocks: []WorkingBlock{{Start: 540, End: 720}}},
				{Day: time.Monday, Blocks: []WorkingBlock{{Start: 780, End: 900}}},
			},
		},
		{
			"invalid weekday",
			[]DaySchedule{{Day: time.Weekday(9)}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateSchedule(tc.schedule))
		})
	}
}

func TestValidateScheduleUnsortedBlocks(t *testing.T) {
	// Blocks may arrive in any order; overlap detection sorts first.
	assert.NoError(t, ValidateSchedule([]DaySchedule{
		{Day: time.Monday, Blocks: []WorkingBlock{{Start: 780, End: 1020}, {Start: 540, End: 720}}},
	}))
	assert.Error(t, ValidateSchedule([]DaySchedule{
		{Day: time.Monday, Blocks: []WorkingBlock{{Start: 700, End: 1020}, {Start: 540, End: 720}}},
	}))
}

func TestScheduleFor(t *testing.T) {
	b := &Barber{Schedule: []DaySchedule{
		{Day: time.Monday, Active: true},
		{Day: time.Friday, Active: false},
	}}
	assert.NotNil(t, b.ScheduleFor(time.Monday))
	assert.NotNil(t, b.ScheduleFor(time.Friday))
	assert.Nil(t, b.ScheduleFor(time.Sunday))
}

func TestReservationOccupies(t *testing.T) {
	r := Reservation{Start: 600, DurationMinutes: 45}
	assert.Equal(t, 645, r.End())

	r.Status = StatusReserved
	assert.True(t, r.Occupies())
	r.Status = StatusCompleted
	assert.True(t, r.Occupies())
	r.Status = StatusCancelled
	assert.False(t, r.Occupies())
}

func TestBlacklistEntryExpired(t *testing.T) {
	now := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	entry := BlacklistEntry{IP: "1.2.3.4", ExpiresAt: now}

	assert.False(t, entry.Expired(now.Add(-time.Second)))
	// A check exactly at the expiry instant lets the client back in.
	assert.True(t, entry.Expired(now))
	assert.True(t, entry.Expired(now.Add(time.Second)))
}
