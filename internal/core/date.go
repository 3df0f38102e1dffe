package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DisplayDateLayout is the layout used for every rendered date.
const DisplayDateLayout = "02-Jan-2006"

// serialEpoch is day zero of the legacy spreadsheet serial date scheme.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// textLayouts are tried in order when parsing a textual date. Day-first
// layouts come before ISO so that "03-04-2024" reads as 3 April.
var textLayouts = []string{
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2-Jan-2006",
	"2 Jan 2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Date is a calendar date. The zero value means the source had no usable
// date ("absent"); absent dates render as an empty string and never
// contribute to sorting before dated rows.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsAbsent reports whether the date is missing.
func (d Date) IsAbsent() bool {
	return d.IsZero()
}

// String renders the date as DD-Mon-YYYY, or "" when absent.
func (d Date) String() string {
	if d.IsAbsent() {
		return ""
	}
	return d.Format(DisplayDateLayout)
}

// ParseDate converts a raw cell value into a Date. Numbers are understood
// as serial day offsets from 1899-12-30, with any fractional time-of-day
// discarded. Text is parsed against the known layouts. Anything that does
// not parse, including blank input, yields the absent Date. ParseDate
// never panics and never returns an error.
func ParseDate(raw any) Date {
	switch v := raw.(type) {
	case nil:
		return Date{}
	case Date:
		return v
	case time.Time:
		if v.IsZero() {
			return Date{}
		}
		return NewDate(v.Year(), int(v.Month()), v.Day())
	case float64:
		return fromSerial(v)
	case float32:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case string:
		return parseDateText(v)
	default:
		return parseDateText(fmt.Sprint(raw))
	}
}

func fromSerial(serial float64) Date {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return Date{}
	}
	days := int(math.Floor(serial))
	t := serialEpoch.AddDate(0, 0, days)
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func parseDateText(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day())
		}
	}
	return Date{}
}
