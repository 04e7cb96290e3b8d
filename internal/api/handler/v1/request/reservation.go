package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var dateExp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type CreateReservationRequest struct {
	SpaceID   uint   `json:"space_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

func (req *CreateReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SpaceID, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Match(dateExp)),
		validation.Field(&req.StartTime, validation.Required, validation.Match(clockExp)),
		validation.Field(&req.EndTime, validation.Required, validation.Match(clockExp)),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

// UpdateReservationRequest carries a partial update; empty fields are left
// unchanged. Date and time changes re-run the availability check.
type UpdateReservationRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

func (req *UpdateReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Match(dateExp)),
		validation.Field(&req.StartTime, validation.Match(clockExp)),
		validation.Field(&req.EndTime, validation.Match(clockExp)),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}
