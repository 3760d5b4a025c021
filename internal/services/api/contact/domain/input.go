package domain

import (
	"bytes"
	"encoding/json"
	"regexp"
	"sync"

	perr "kristech/internal/platform/errors"
	"kristech/internal/platform/net/http/bind"
	pstrings "kristech/internal/platform/strings"
)

// FieldViolation names one failing field and its human message
type FieldViolation = perr.Violation

// Flag decodes a JSON boolean or string into its string form
// so "true" and true are both accepted for consent checkboxes
type Flag string

// UnmarshalJSON accepts true, false, a string or null
func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null":
		*f = ""
		return nil
	case "true", "false":
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*f = Flag(s)
	return nil
}

// SubmitInput is the raw contact form payload
type SubmitInput struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50,person_name" example:"Ada"`
	LastName  string `json:"lastName"  validate:"required,min=2,max=50,person_name" example:"Lovelace"`
	Email     string `json:"email"     validate:"required,email,max=255"            example:"ada@example.com"`
	Phone     string `json:"phone"     validate:"omitempty,phone"                   example:"+15551234567"`
	Service   string `json:"service"   validate:"required,service_kind"             example:"web-development"`
	Message   string `json:"message"   validate:"required,min=10,max=1000"          example:"I would like a new website for my bakery."`
	Privacy   Flag   `json:"privacy"   validate:"required,affirmative"              example:"true" swaggertype:"boolean"`
}

// Clean is a submit payload that passed every rule, normalized for storage
type Clean struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Service   ServiceKind
	Message   string
}

// FieldMessages is the per field text reported for any failing rule
var FieldMessages = map[string]string{
	"firstName": "First name must be 2-50 characters and contain only letters",
	"lastName":  "Last name must be 2-50 characters and contain only letters",
	"email":     "Please provide a valid email address",
	"phone":     "Please provide a valid phone number",
	"service":   "Please select a valid service",
	"message":   "Message must be between 10 and 1000 characters",
	"privacy":   "You must agree to the privacy policy",
}

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{0,14}$`)

	rulesOnce sync.Once
	rulesErr  error
)

// RegisterRules installs the contact tags on the shared validator
// safe to call many times
func RegisterRules() error {
	rulesOnce.Do(func() {
		for tag, fn := range map[string]func(fl bind.FieldLevel) bool{
			"person_name": func(fl bind.FieldLevel) bool { return nameRe.MatchString(fl.Field().String()) },
			"phone":       func(fl bind.FieldLevel) bool { return phoneRe.MatchString(fl.Field().String()) },
			"service_kind": func(fl bind.FieldLevel) bool {
				return ServiceKind(fl.Field().String()).Valid()
			},
			"affirmative": func(fl bind.FieldLevel) bool { return fl.Field().String() == "true" },
		} {
			if err := bind.RegisterValidation(tag, fn); err != nil {
				rulesErr = err
				return
			}
		}
	})
	return rulesErr
}

// Normalize trims and NFC folds every string field
func (in SubmitInput) Normalize() SubmitInput {
	return SubmitInput{
		FirstName: pstrings.Clean(in.FirstName),
		LastName:  pstrings.Clean(in.LastName),
		Email:     pstrings.Clean(in.Email),
		Phone:     pstrings.Clean(in.Phone),
		Service:   pstrings.Clean(in.Service),
		Message:   pstrings.Clean(in.Message),
		Privacy:   Flag(pstrings.Clean(string(in.Privacy))),
	}
}

// Validate normalizes in and checks every rule, collecting all violations in field order
// the Clean value is only meaningful when no violations are returned
func Validate(in SubmitInput) (Clean, []FieldViolation) {
	if err := RegisterRules(); err != nil {
		return Clean{}, []FieldViolation{{Message: err.Error()}}
	}
	n := in.Normalize()
	if err := bind.Struct(n, FieldMessages); err != nil {
		if vs := perr.ViolationsOf(err); len(vs) > 0 {
			return Clean{}, vs
		}
		return Clean{}, []FieldViolation{{Message: err.Error()}}
	}
	return Clean{
		FirstName: n.FirstName,
		LastName:  n.LastName,
		Email:     CanonicalEmail(n.Email),
		Phone:     pstrings.Ptr(n.Phone),
		Service:   ServiceKind(n.Service),
		Message:   n.Message,
	}, nil
}
