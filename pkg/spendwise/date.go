package spendwise

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a custom type that handles date-only JSON values
type Date struct {
	time.Time
}

// NewDate creates a Date truncated to its calendar day
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implements json.Unmarshaler for Date
func (d *Date) UnmarshalJSON(data []byte) error {
	// The backend serializes LocalDate either as a string or as a
	// [year, month, day] array depending on its JSON configuration.
	if len(data) > 0 && data[0] == '[' {
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil || len(parts) < 3 {
			return fmt.Errorf("unable to parse date array: %s", data)
		}
		d.Time = time.Date(parts[0], time.Month(parts[1]), parts[2], 0, 0, 0, 0, time.UTC)
		return nil
	}

	// Remove quotes
	str := strings.Trim(string(data), `"`)

	// Handle null/empty
	if str == "" || str == "null" {
		d.Time = time.Time{}
		return nil
	}

	// Try parsing as date only first (YYYY-MM-DD)
	t, err := time.Parse("2006-01-02", str)
	if err == nil {
		d.Time = t
		return nil
	}

	// Try parsing as full timestamp (RFC3339)
	t, err = time.Parse(time.RFC3339, str)
	if err == nil {
		d.Time = t
		return nil
	}

	// Try parsing with time but no timezone
	t, err = time.Parse("2006-01-02T15:04:05", str)
	if err == nil {
		d.Time = t
		return nil
	}

	return fmt.Errorf("unable to parse date: %s", str)
}

// MarshalJSON implements json.Marshaler for Date
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	// Format as date only
	return []byte(fmt.Sprintf(`"%s"`, d.Time.Format("2006-01-02"))), nil
}

// String returns the date as a string
func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// MonthKey is a canonical YYYY-MM string derived by truncating a
// calendar date. It is the scoping unit for budgets and is never
// entered independently.
type MonthKey string

// MonthKeyOf truncates a calendar date to its year-month
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// CurrentMonthKey returns the month key for the current date
func CurrentMonthKey() MonthKey {
	return MonthKeyOf(time.Now())
}

// MonthKey returns the month key the date falls in
func (d Date) MonthKey() MonthKey {
	return MonthKeyOf(d.Time)
}

// Valid reports whether the key is exactly a 4-digit year,
// hyphen, 2-digit month.
func (m MonthKey) Valid() bool {
	_, err := time.Parse("2006-01", string(m))
	return err == nil && len(m) == 7
}

// Time returns the first day of the month
func (m MonthKey) Time() (time.Time, error) {
	return time.Parse("2006-01", string(m))
}

// String returns the key as a string
func (m MonthKey) String() string {
	return string(m)
}
