package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordRegex = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
	Phone           string `json:"phone"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.By(validatePassword)),
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Phone, validation.Length(0, 20)),
	)
	if err != nil {
		return err
	}

	if req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

func validatePassword(value interface{}) error {
	password, _ := value.(string)

	matched, err := passwordRegex.MatchString(password)
	if err != nil || !matched {
		return errInvalidPassword
	}

	return nil
}
