package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/espacios-app/reservas-api/internal/domain"
)

var (
	ErrEndNotAfterStart   = errors.New("end time must be after start time")
	ErrNoSundayService    = errors.New("no service on Sundays")
	ErrReservationOverlap = errors.New("an overlapping reservation already exists for that time")
	ErrInvalidClockValue  = errors.New("invalid time value, expected HH:MM")
)

// OutsideHoursError carries the effective bounds so the caller can tell the
// user when the space actually operates.
type OutsideHoursError struct {
	Opening string
	Closing string
}

func (e *OutsideHoursError) Error() string {
	return fmt.Sprintf("the space operates from %v to %v", e.Opening, e.Closing)
}

// checkAvailability decides whether the proposed (date, start, end) interval
// can be booked against a space's operating hours and the already blocking
// reservations for that space and date. Existing intervals are compared
// half-open: two reservations conflict iff start < existingEnd and
// end > existingStart, so back-to-back bookings are allowed.
func checkAvailability(space domain.Space, date time.Time, start, end string, existing []domain.Reservation) error {
	startMin, err := parseClock(start)
	if err != nil {
		return err
	}
	endMin, err := parseClock(end)
	if err != nil {
		return err
	}

	if endMin <= startMin {
		return ErrEndNotAfterStart
	}

	if date.Weekday() == time.Sunday {
		return ErrNoSundayService
	}

	closing := space.ClosingWeekday
	if date.Weekday() == time.Saturday {
		closing = space.ClosingSaturday
	}

	openingMin, err := parseClock(space.OpeningTime)
	if err != nil {
		return fmt.Errorf("space %v opening time -> %w", space.ID, err)
	}
	closingMin, err := parseClock(closing)
	if err != nil {
		return fmt.Errorf("space %v closing time -> %w", space.ID, err)
	}

	if startMin < openingMin || endMin > closingMin {
		return &OutsideHoursError{Opening: clockString(openingMin), Closing: clockString(closingMin)}
	}

	for _, res := range existing {
		existingStart, err := parseClock(res.StartTime)
		if err != nil {
			return fmt.Errorf("reservation %v start time -> %w", res.ID, err)
		}
		existingEnd, err := parseClock(res.EndTime)
		if err != nil {
			return fmt.Errorf("reservation %v end time -> %w", res.ID, err)
		}

		if startMin < existingEnd && endMin > existingStart {
			return ErrReservationOverlap
		}
	}

	return nil
}

// parseClock converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
// Seconds are ignored; the schema stores whole-minute bounds.
func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockValue, value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockValue, value)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockValue, value)
	}

	return hours*60 + minutes, nil
}

func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
