package services

import (
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salon-agenda-backend/models"
	"salon-agenda-backend/utils"
)

// BusyInterval is a half-open [StartMin, EndMin) range, in minutes from the
// midnight of the day being queried.
type BusyInterval struct {
	StartMin int
	EndMin   int
}

// SlotGrid describes the bookable day: business hours, the candidate step and
// the buffer that keeps same-day bookings out of the immediate present.
type SlotGrid struct {
	OpenMin   int
	CloseMin  int
	StepMin   int
	BufferMin int
}

// Slots yields the valid "HH:MM" start times for a booking of durationMin on
// date, given the day's busy intervals. The sequence is finite and can be
// ranged over more than once; an empty sequence means the day is full.
//
// A candidate t is valid iff t+duration fits before closing and t does not
// half-open-overlap any busy interval. When date is today (relative to now),
// candidates before now+buffer are excluded.
func (g SlotGrid) Slots(date time.Time, durationMin int, busy []BusyInterval, now time.Time) iter.Seq[string] {
	return func(yield func(string) bool) {
		if durationMin <= 0 || g.StepMin <= 0 {
			return
		}

		earliest := -1
		if utils.SameDay(date, now) {
			earliest = utils.MinutesIntoDay(now) + g.BufferMin
		}

		for t := g.OpenMin; t+durationMin <= g.CloseMin; t += g.StepMin {
			if t < earliest {
				continue
			}
			if overlapsAny(t, t+durationMin, busy) {
				continue
			}
			if !yield(fmt.Sprintf("%02d:%02d", t/60, t%60)) {
				return
			}
		}
	}
}

// Half-open intervals: [start,end) overlaps [b.StartMin,b.EndMin) iff
// start < b.EndMin && b.StartMin < end.
func overlapsAny(start, end int, busy []BusyInterval) bool {
	for _, b := range busy {
		if start < b.EndMin && b.StartMin < end {
			return true
		}
	}
	return false
}

// DayBusyIntervals collects the busy set a new booking would be validated
// against: the staff member's appointments plus the assigned cabin's, since
// the booking transaction requires both to be free. cabinID may be uuid.Nil
// when no cabin is registered.
func DayBusyIntervals(db *gorm.DB, staffID, cabinID uuid.UUID, date time.Time) ([]BusyInterval, error) {
	dayStart := utils.BeginningOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := db.
		Where("(staff_id = ? OR cabin_id = ?) AND status <> ? AND start_time < ? AND end_time > ?",
			staffID, cabinID, models.StatusCancelled, dayEnd, dayStart).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return BusyIntervals(appointments, date), nil
}

// BusyIntervals reduces a staff member's (or cabin's) appointments on date to
// busy intervals, skipping cancelled ones and clipping to the day.
func BusyIntervals(appointments []models.Appointment, date time.Time) []BusyInterval {
	dayStart := utils.BeginningOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var busy []BusyInterval
	for _, a := range appointments {
		if a.Status == models.StatusCancelled {
			continue
		}
		if !a.EndTime.After(dayStart) || !a.StartTime.Before(dayEnd) {
			continue
		}
		start := a.StartTime
		if start.Before(dayStart) {
			start = dayStart
		}
		end := a.EndTime
		if end.After(dayEnd) {
			end = dayEnd
		}
		busy = append(busy, BusyInterval{
			StartMin: int(start.Sub(dayStart).Minutes()),
			EndMin:   int(end.Sub(dayStart).Minutes()),
		})
	}
	return busy
}
