package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical wire format for calendar dates.
const DateLayout = "2006-01-02"

// shortDateLayout is dd-MMM-yy. Two-digit years always fall in 2000-2099 and
// the month abbreviation must be written exactly as "Nov".
const shortDateLayout = "02-Jan-06"

// AcceptedDateLayouts are tried in order when reading a date from user input.
var AcceptedDateLayouts = []string{
	DateLayout, // yyyy-MM-dd
	shortDateLayout,
}

// Date is a calendar date without time of day or zone.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate tries every accepted layout in order and returns the first match.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range AcceptedDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == shortDateLayout {
			// time.Parse matches month names case-insensitively
			if t.Format(shortDateLayout) != s {
				continue
			}
			if t.Year() < 2000 {
				t = t.AddDate(100, 0, 0)
			}
		}
		return NewDate(t.Year(), t.Month(), t.Day()), nil
	}
	return Date{}, UnreadableFilef("Invalid date %s", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	*d = NewDate(t.Year(), t.Month(), t.Day())
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
	case []byte:
		return d.Scan(string(v))
	case string:
		t, err := time.Parse(DateLayout, v[:min(len(v), len(DateLayout))])
		if err != nil {
			return fmt.Errorf("scan date %q: %w", v, err)
		}
		*d = NewDate(t.Year(), t.Month(), t.Day())
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
	return nil
}
