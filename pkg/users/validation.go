package users

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// FieldError reports which registration field was rejected.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Unwrap() error { return ErrValidation }

func missingField(name string) error {
	return &FieldError{Field: name, Message: "Missing required field: " + name}
}

func invalidField(name string, err error) error {
	return &FieldError{Field: name, Message: fmt.Sprintf("Invalid field %s: %v", name, err)}
}

type field struct {
	name  string
	value *string
}

// validate checks presence in declaration order, then formats, and returns the
// normalized user ready for insertion.
func validate(in NewUser) (User, error) {
	fields := []field{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"email", in.Email},
		{"birthDate", in.BirthDate},
		{"city", in.City},
		{"postalCode", in.PostalCode},
	}
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.value == nil || strings.TrimSpace(*f.value) == "" {
			return User{}, missingField(f.name)
		}
		values[f.name] = strings.TrimSpace(*f.value)
	}

	rules := []struct {
		name  string
		rules []validation.Rule
	}{
		{"firstName", []validation.Rule{validation.RuneLength(1, 255)}},
		{"lastName", []validation.Rule{validation.RuneLength(1, 255)}},
		{"email", []validation.Rule{validation.RuneLength(3, 255), is.Email}},
		{"city", []validation.Rule{validation.RuneLength(1, 255)}},
		{"postalCode", []validation.Rule{validation.RuneLength(1, 5)}},
	}
	for _, r := range rules {
		if err := validation.Validate(values[r.name], r.rules...); err != nil {
			return User{}, invalidField(r.name, err)
		}
	}

	birthDate, err := ParseDate(values["birthDate"])
	if err != nil {
		return User{}, invalidField("birthDate", err)
	}

	return User{
		FirstName:  values["firstName"],
		LastName:   values["lastName"],
		Email:      strings.ToLower(values["email"]),
		BirthDate:  birthDate,
		City:       values["city"],
		PostalCode: values["postalCode"],
	}, nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp,
// keeping only the date part.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be a date in YYYY-MM-DD format")
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
