// Package validation holds the field checks used by the onboarding forms.
// Every function is pure and reports failures through Result, never an error.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Result is the verdict for a single field. Message is empty when IsValid.
type Result struct {
	IsValid bool
	Message string
}

// Errors maps a form field name to its message.
type Errors map[string]string

const (
	MsgEmail          = "Please enter a valid email address"
	MsgPassword       = "Password must contain uppercase, lowercase, and numbers"
	MsgPhone          = "Please enter a valid phone number"
	MsgURL            = "Please enter a valid URL"
	MsgDate           = "Please enter a valid date (YYYY-MM-DD)"
	MsgPasswordsMatch = "Passwords do not match"

	MinPasswordLength = 6
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern   = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	whitespace     = regexp.MustCompile(`\s`)

	validate = validator.New()
)

func ok() Result { return Result{IsValid: true} }

func fail(msg string) Result { return Result{Message: msg} }

func requiredMsg(field string) string { return field + " is required" }

// Email checks presence, then the local@domain.tld shape.
func Email(email string) Result {
	if email == "" {
		return fail(requiredMsg("Email"))
	}
	if !emailPattern.MatchString(email) {
		return fail(MsgEmail)
	}
	return ok()
}

// PasswordChecks lists which character classes a password contains.
type PasswordChecks struct {
	Upper   bool
	Lower   bool
	Digit   bool
	Special bool
}

// CheckPassword reports the character classes present in p.
func CheckPassword(p string) PasswordChecks {
	var c PasswordChecks
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			c.Upper = true
		case r >= 'a' && r <= 'z':
			c.Lower = true
		case r >= '0' && r <= '9':
			c.Digit = true
		}
	}
	c.Special = specialPattern.MatchString(p)
	return c
}

// Password requires at least MinPasswordLength characters with upper case,
// lower case and a digit. Special characters are reported by CheckPassword
// but not required.
func Password(password string) Result {
	if password == "" {
		return fail(requiredMsg("Password"))
	}
	if r := MinLength(password, MinPasswordLength, "Password"); !r.IsValid {
		return r
	}
	c := CheckPassword(password)
	if !c.Upper || !c.Lower || !c.Digit {
		return fail(MsgPassword)
	}
	return ok()
}

// Login validates the login form; the first failing field wins.
func Login(email, password string) Result {
	if r := Email(email); !r.IsValid {
		return r
	}
	return Password(password)
}

// Required fails for empty or whitespace-only values.
func Required(value, field string) Result {
	if strings.TrimSpace(value) == "" {
		return fail(requiredMsg(field))
	}
	return ok()
}

func MinLength(value string, min int, field string) Result {
	if utf8.RuneCountInString(value) < min {
		return fail(fmt.Sprintf("%s must be at least %d characters long", field, min))
	}
	return ok()
}

func MaxLength(value string, max int, field string) Result {
	if utf8.RuneCountInString(value) > max {
		return fail(fmt.Sprintf("%s must be no more than %d characters long", field, max))
	}
	return ok()
}

// Phone accepts an optional leading + and up to 16 digits; spaces are ignored.
func Phone(phone string) Result {
	if phone == "" {
		return fail(requiredMsg("Phone number"))
	}
	if !phonePattern.MatchString(whitespace.ReplaceAllString(phone, "")) {
		return fail(MsgPhone)
	}
	return ok()
}

// URL accepts absolute URLs with a scheme.
func URL(raw string) Result {
	if raw == "" {
		return fail(requiredMsg("URL"))
	}
	if err := validate.Var(raw, "url"); err != nil {
		return fail(MsgURL)
	}
	return ok()
}

func Numeric(value, field string) Result {
	if value == "" {
		return fail(requiredMsg(field))
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
		return fail(field + " must be a number")
	}
	return ok()
}

// Date accepts YYYY-MM-DD values that exist in the calendar.
func Date(date string) Result {
	if date == "" {
		return fail(requiredMsg("Date"))
	}
	if !datePattern.MatchString(date) {
		return fail(MsgDate)
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fail(MsgDate)
	}
	return ok()
}

func PasswordsMatch(password, confirm string) Result {
	if password != confirm {
		return fail(MsgPasswordsMatch)
	}
	return ok()
}

// ProfileFields is the editable part of the profile form.
type ProfileFields struct {
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	DateOfBirth string
}

// Profile validates the profile form. Names are required; phone and date of
// birth are checked only when filled in. The result is empty when the form
// is valid.
func Profile(f ProfileFields) Errors {
	errs := Errors{}
	if r := Required(f.FirstName, "First name"); !r.IsValid {
		errs["firstName"] = r.Message
	}
	if r := Required(f.LastName, "Last name"); !r.IsValid {
		errs["lastName"] = r.Message
	}
	if strings.TrimSpace(f.Phone) != "" {
		if r := Phone(f.Phone); !r.IsValid {
			errs["phone"] = r.Message
		}
	}
	if strings.TrimSpace(f.DateOfBirth) != "" {
		if r := Date(strings.TrimSpace(f.DateOfBirth)); !r.IsValid {
			errs["dateOfBirth"] = r.Message
		}
	}
	return errs
}
