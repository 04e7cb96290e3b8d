package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var clockExp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

type CreateSpaceRequest struct {
	Name            string `json:"name"`
	TypeID          uint   `json:"type_id"`
	Capacity        int    `json:"capacity"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	OpeningTime     string `json:"opening_time"`
	ClosingWeekday  string `json:"closing_weekday"`
	ClosingSaturday string `json:"closing_saturday"`
}

func (req *CreateSpaceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.TypeID, validation.Required),
		validation.Field(&req.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.OpeningTime, validation.Required, validation.Match(clockExp)),
		validation.Field(&req.ClosingWeekday, validation.Required, validation.Match(clockExp)),
		validation.Field(&req.ClosingSaturday, validation.Required, validation.Match(clockExp)),
	)
}

type UpdateSpaceRequest struct {
	Name            string `json:"name"`
	TypeID          uint   `json:"type_id"`
	Capacity        int    `json:"capacity"`
	Location        string `json:"location"`
	Active          *bool  `json:"active"`
	Description     string `json:"description"`
	OpeningTime     string `json:"opening_time"`
	ClosingWeekday  string `json:"closing_weekday"`
	ClosingSaturday string `json:"closing_saturday"`
}

func (req *UpdateSpaceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.TypeID, validation.Required),
		validation.Field(&req.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Active, validation.NotNil),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.OpeningTime, validation.Required, validation.Match(clockExp)),
		validation.Field(&req.ClosingWeekday, validation.Required, validation.Match(clockExp)),
		validation.Field(&req.ClosingSaturday, validation.Required, validation.Match(clockExp)),
	)
}

type SpaceTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *SpaceTypeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Description, validation.Length(0, 200)),
	)
}
