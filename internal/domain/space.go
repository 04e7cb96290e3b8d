package domain

import "time"

type SpaceType struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Space is a bookable physical resource. Operating hours are clock values
// in "HH:MM" or "HH:MM:SS" form; Saturday has its own closing bound and
// there is no service on Sunday.
type Space struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	TypeID          uint      `json:"type_id"`
	TypeName        string    `json:"type_name,omitempty"`
	Capacity        int       `json:"capacity"`
	Location        string    `json:"location"`
	Active          bool      `json:"active"`
	Description     string    `json:"description"`
	OpeningTime     string    `json:"opening_time"`
	ClosingWeekday  string    `json:"closing_weekday"`
	ClosingSaturday string    `json:"closing_saturday"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
