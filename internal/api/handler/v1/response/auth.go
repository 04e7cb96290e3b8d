package response

import "github.com/espacios-app/reservas-api/internal/domain"

type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
