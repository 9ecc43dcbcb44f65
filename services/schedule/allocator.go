package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	barberRepo "trimly/database/repository/barber"
	reservationRepo "trimly/database/repository/reservation"
	serviceRepo "trimly/database/repository/service"
	"trimly/models"
)

var (
	// ErrSlotUnavailable is returned by ValidateSlot when the proposed start
	// is not among the currently bookable slots. This is a routine outcome
	// under concurrent booking, not a failure.
	ErrSlotUnavailable = errors.New("slot no longer available")

	// ErrOutsideHorizon is returned for dates beyond the booking horizon.
	ErrOutsideHorizon = errors.New("date outside the booking horizon")
)

// Clock abstracts the wall clock so availability is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Allocator computes bookable start times for a (barber, service, date)
// tuple from the barber's working blocks minus already-taken intervals.
//
// ComputeAvailability is a pure function of schedule + reservations + clock
// and is used for display; ValidateSlot re-reads reservation state at write
// time. Neither is sufficient against a concurrent writer on its own: the
// reservation repository's unique slot index is the final arbiter, and the
// booking writer translates its duplicate-key rejection into a conflict.
type Allocator struct {
	Barbers      barberRepo.BarberRepository
	Services     serviceRepo.ServiceRepository
	Reservations reservationRepo.ReservationRepository
	Clock        Clock

	// Granularity is the step between candidate starts, in minutes.
	// Zero means step by the service duration.
	Granularity int

	// HorizonDays bounds how far ahead a date may be queried or booked.
	HorizonDays int

	// DefaultLocation is used for tenants without a pinned timezone.
	DefaultLocation *time.Location
}

func (a *Allocator) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock.Now()
}

// locationFor resolves the tenant's timezone, falling back to the allocator
// default and finally UTC. An unknown timezone name falls back rather than
// failing: availability must never depend on ambient server time.
func (a *Allocator) locationFor(tenant *models.Tenant) *time.Location {
	if tenant != nil && tenant.Timezone != "" {
		if loc, err := time.LoadLocation(tenant.Timezone); err == nil {
			return loc
		}
	}
	if a.DefaultLocation != nil {
		return a.DefaultLocation
	}
	return time.UTC
}

// busyInterval is an occupied [Start, End) range on a barber's day.
type busyInterval struct {
	Start int
	End   int
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ComputeAvailability returns the bookable start times (minutes from
// midnight, ascending) for the barber, service and date. A day with no
// active working blocks yields an empty slice, not an error.
func (a *Allocator) ComputeAvailability(ctx context.Context, tenant *models.Tenant, barberID, serviceID, date string) ([]int, error) {
	loc := a.locationFor(tenant)

	day, err := ParseDate(date, loc)
	if err != nil {
		return nil, err
	}

	now := a.now().In(loc)
	if a.HorizonDays > 0 && day.After(now.AddDate(0, 0, a.HorizonDays)) {
		return nil, ErrOutsideHorizon
	}

	barber, err := a.Barbers.GetByID(ctx, tenant.ID, barberID)
	if err != nil {
		return nil, err
	}
	svc, err := a.Services.GetByID(ctx, tenant.ID, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.DurationMinutes <= 0 {
		return nil, fmt.Errorf("service %s has no duration", serviceID)
	}

	daySched := barber.ScheduleFor(day.Weekday())
	if !barber.Active || daySched == nil || !daySched.Active || len(daySched.Blocks) == 0 {
		return []int{}, nil
	}

	reservations, err := a.Reservations.FindActiveByBarberDate(ctx, tenant.ID, barberID, date)
	if err != nil {
		return nil, err
	}
	busy := make([]busyInterval, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		if r.Occupies() {
			busy = append(busy, busyInterval{Start: r.Start, End: r.End()})
		}
	}

	// Slots for a date already behind us are all in the past.
	today := SameDate(day, now)
	if !today && day.Before(now) {
		return []int{}, nil
	}
	nowMinute := -1
	if today {
		nowMinute = MinuteOfDay(now)
	}

	step := a.Granularity
	if step <= 0 {
		step = svc.DurationMinutes
	}

	blocks := make([]models.WorkingBlock, len(daySched.Blocks))
	copy(blocks, daySched.Blocks)
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start < blocks[j].Start })

	var slots []int
	for _, block := range blocks {
		for cand := block.Start; cand+svc.DurationMinutes <= block.End; cand += step {
			if cand <= nowMinute {
				continue
			}
			free := true
			for _, b := range busy {
				if overlaps(cand, cand+svc.DurationMinutes, b.Start, b.End) {
					free = false
					break
				}
			}
			if free {
				slots = append(slots, cand)
			}
		}
	}
	if slots == nil {
		slots = []int{}
	}
	return slots, nil
}

// ValidateSlot re-derives availability from current reservation state and
// checks that the proposed start is still bookable. Returns
// ErrSlotUnavailable on a lost race or a stale display.
func (a *Allocator) ValidateSlot(ctx context.Context, tenant *models.Tenant, barberID, serviceID, date string, proposedStart int) error {
	slots, err := a.ComputeAvailability(ctx, tenant, barberID, serviceID, date)
	if err != nil {
		return err
	}
	for _, s := range slots {
		if s == proposedStart {
			return nil
		}
	}
	return ErrSlotUnavailable
}
