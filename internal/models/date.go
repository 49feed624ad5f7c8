package models

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component, serialized as ISO 8601
// YYYY-MM-DD. Assignments use it for timeline bounds.
type Date struct {
	t time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// After reports whether d falls after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether two dates name the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("invalid date literal %s: use \"YYYY-MM-DD\"", string(b))
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
