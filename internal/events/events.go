// Package events publishes reservation lifecycle messages to RabbitMQ for
// downstream consumers (notifications, reporting). Delivery is best effort:
// the API never fails a request because the broker is down.
package events

import "time"

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationCancelled = "reservation.cancelled"
)

// ReservationEvent carries enough context for consumers to act without
// querying the primary database.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID uint      `json:"reservation_id"`
	UserID        uint      `json:"user_id"`
	SpaceID       uint      `json:"space_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
