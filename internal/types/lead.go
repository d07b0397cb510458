package types

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// LeadData is the contact-capture record collected before the full report is shown.
type LeadData struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Company  string `json:"company" validate:"required"`
	Category string `json:"category" validate:"required,oneof=SaaS Hardware DSO Other"`
	Size     string `json:"size" validate:"required,oneof=SMB Mid-Market Enterprise"`
	State    string `json:"state" validate:"required"`
	Zip      string `json:"zip" validate:"required,zip5"`
}

// Normalize trims whitespace and reduces the zip code to its digits.
func (l LeadData) Normalize() LeadData {
	l.Name = strings.TrimSpace(l.Name)
	l.Title = strings.TrimSpace(l.Title)
	l.Email = strings.TrimSpace(l.Email)
	l.Phone = strings.TrimSpace(l.Phone)
	l.Company = strings.TrimSpace(l.Company)
	l.Category = strings.TrimSpace(l.Category)
	l.Size = strings.TrimSpace(l.Size)
	l.State = strings.TrimSpace(l.State)
	l.Zip = digitsOnly(l.Zip)
	return l
}

// Validate validates the LeadData using the validator.
func (l *LeadData) Validate() error {
	return NewValidator().Struct(l)
}

// NewValidator returns a validator with the custom tags used by LeadData registered.
func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("zip5", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(digitsOnly(fl.Field().String()))
	})
	return validate
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
