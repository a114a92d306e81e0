package users

import "time"

// DateLayout is the calendar-date format used for birth dates on the wire.
const DateLayout = "2006-01-02"

// User is a registered person. Users are never updated in place.
type User struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	BirthDate  time.Time
	City       string
	PostalCode string
}

// NewUser carries the raw registration payload. Nil fields were absent from the request.
type NewUser struct {
	FirstName  *string
	LastName   *string
	Email      *string
	BirthDate  *string
	City       *string
	PostalCode *string
}
