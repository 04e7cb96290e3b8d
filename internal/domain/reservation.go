package domain

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Blocking reports whether a reservation in this status still claims its
// time slot. Cancelled is terminal and releases the interval.
func (s ReservationStatus) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Reservation struct {
	ID        uint              `json:"id"`
	UserID    uint              `json:"user_id"`
	SpaceID   uint              `json:"space_id"`
	Date      time.Time         `json:"date"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Notes     string            `json:"notes"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Joined display fields, populated on list queries only.
	SpaceName     string `json:"space_name,omitempty"`
	SpaceLocation string `json:"space_location,omitempty"`
	SpaceTypeName string `json:"space_type,omitempty"`
	UserName      string `json:"user_name,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
}

// TimeSlot is a booked interval on a given date, as exposed by the
// availability endpoint.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DayAvailability describes a space's bounds and existing claims for one date.
type DayAvailability struct {
	OpeningTime     string     `json:"opening_time"`
	ClosingWeekday  string     `json:"closing_weekday"`
	ClosingSaturday string     `json:"closing_saturday"`
	Reserved        []TimeSlot `json:"reserved"`
}
