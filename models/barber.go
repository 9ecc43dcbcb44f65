package models

import (
	"fmt"
	"sort"
	"time"
)

// WorkingBlock is one contiguous availability window within a day, in minutes
// from midnight. Start is inclusive, End exclusive.
type WorkingBlock struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// DaySchedule holds a barber's working blocks for one weekday.
type DaySchedule struct {
	Day    time.Weekday   `bson:"day" json:"day"`
	Active bool           `bson:"active" json:"active"`
	Blocks []WorkingBlock `bson:"blocks" json:"blocks"`
}

// Barber is a bookable staff member of a tenant. The weekly schedule is
// embedded on the barber document and read by the slot allocator.
type Barber struct {
	ID        string        `bson:"id" json:"id"`
	TenantID  string        `bson:"tenant_id" json:"tenant_id"`
	Name      string        `bson:"name" json:"name"`
	Active    bool          `bson:"active" json:"active"`
	Schedule  []DaySchedule `bson:"schedule,omitempty" json:"schedule,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// ScheduleFor returns the schedule for the given weekday, or nil when none
// is configured.
func (b *Barber) ScheduleFor(day time.Weekday) *DaySchedule {
	for i := range b.Schedule {
		if b.Schedule[i].Day == day {
			return &b.Schedule[i]
		}
	}
	return nil
}

// ValidateSchedule checks the structural invariants of a weekly schedule:
// every block has start < end, and blocks for the same day do not overlap.
func ValidateSchedule(schedule []DaySchedule) error {
	seen := make(map[time.Weekday]bool, len(schedule))
	for _, day := range schedule {
		if day.Day < time.Sunday || day.Day > time.Saturday {
			return fmt.Errorf("invalid weekday %d", day.Day)
		}
		if seen[day.Day] {
			return fmt.Errorf("duplicate schedule entry for %s", day.Day)
		}
		seen[day.Day] = true

		blocks := make([]WorkingBlock, len(day.Blocks))
		copy(blocks, day.Blocks)
		sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start < blocks[j].Start })

		for i, blk := range blocks {
			if blk.Start < 0 || blk.End > 24*60 {
				return fmt.Errorf("%s: block [%d, %d) outside the day", day.Day, blk.Start, blk.End)
			}
			if blk.Start >= blk.End {
				return fmt.Errorf("%s: block start %d must be before end %d", day.Day, blk.Start, blk.End)
			}
			if i > 0 && blk.Start < blocks[i-1].End {
				return fmt.Errorf("%s: blocks [%d, %d) and [%d, %d) overlap",
					day.Day, blocks[i-1].Start, blocks[i-1].End, blk.Start, blk.End)
			}
		}
	}
	return nil
}
