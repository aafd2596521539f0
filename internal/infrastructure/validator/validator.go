package validator

import (
	"errors"
	"regexp"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator that implements the usecase.Validator interface.
func NewValidator() usecasecontract.IValidator {
	return &AppValidator{validate: validator.New()}
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	return av.validate.Var(email, "required,email")
}

// ValidatePasswordStrength requires at least 8 characters, a letter and a digit.
func (av *AppValidator) ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return errors.New("password must be at least 8 characters long")
	}
	if !containsLetter(password) {
		return errors.New("password must contain at least one letter")
	}
	if !containsNumber(password) {
		return errors.New("password must contain at least one number")
	}
	return nil
}

// RegisterCustomValidators registers the "username" and "password" tags with gin's binding engine.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", usernameFL)
		_ = v.RegisterValidation("password", passwordFL)
	}
}

func usernameFL(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

func passwordFL(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return len([]rune(s)) >= minPasswordLength && containsLetter(s) && containsNumber(s)
}

// containsLetter checks if the string contains at least one letter.
func containsLetter(s string) bool {
	for _, char := range s {
		if unicode.IsLetter(char) {
			return true
		}
	}
	return false
}

// containsNumber checks if the string contains at least one number.
func containsNumber(s string) bool {
	for _, char := range s {
		if unicode.IsNumber(char) {
			return true
		}
	}
	return false
}
