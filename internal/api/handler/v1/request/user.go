package request

import (
	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// UpdateProfileRequest carries partial updates; empty fields are left
// unchanged.
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(2, 50)),
		validation.Field(&req.Surname, validation.Length(2, 50)),
		validation.Field(&req.Phone, validation.Length(0, 20)),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (req *ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CurrentPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	passwordExp := regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	ok, err := passwordExp.MatchString(req.NewPassword)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}
