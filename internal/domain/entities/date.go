package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the canonical wire form of a calendar date
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component. The zero value is "no date".
type Date struct {
	time.Time
}

// NewDate builds a Date at UTC midnight
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock and zone of t, keeping its calendar day
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// MustParseDate parses an ISO date and panics on failure. Intended for tests and constants.
func MustParseDate(s string) Date {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(fmt.Sprintf("entities: invalid date %q: %v", s, err))
	}
	return DateOf(t)
}

// Before reports whether d is strictly earlier than o
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

// After reports whether d is strictly later than o
func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

// Equal reports whether both dates name the same day
func (d Date) Equal(o Date) bool { return d.Time.Equal(o.Time) }

// InRange reports whether d lies within [start, end]. A nil bound is open.
func (d Date) InRange(start, end *Date) bool {
	if start != nil && d.Before(*start) {
		return false
	}
	if end != nil && d.After(*end) {
		return false
	}
	return true
}

// String returns the ISO form, or "" for the zero date
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "YYYY-MM-DD" or null
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	*d = DateOf(t)
	return nil
}
