package model

import (
    "database/sql/driver"
    "encoding/json"
    "fmt"
    "time"
)

// DateLayout is the wire format for calendar dates. The API exchanges
// dates without a time-of-day component; internally a Date is the
// midnight-UTC instant of that calendar day.
const DateLayout = "2006-01-02"

// Date is a calendar date. It embeds time.Time so comparisons work as
// usual, but marshals to and from plain YYYY-MM-DD strings in JSON and
// in SQL parameters.
type Date struct {
    time.Time
}

// NewDate builds a Date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
    return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string into a Date. Any time-of-day or
// zone suffix is rejected.
func ParseDate(s string) (Date, error) {
    t, err := time.ParseInLocation(DateLayout, s, time.UTC)
    if err != nil {
        return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
    }
    return Date{t}, nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string { return d.Format(DateLayout) }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.Time.IsZero() }

// MarshalJSON renders the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
    return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON parses a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(b []byte) error {
    var s string
    if err := json.Unmarshal(b, &s); err != nil {
        return err
    }
    parsed, err := ParseDate(s)
    if err != nil {
        return err
    }
    *d = parsed
    return nil
}

// Value implements driver.Valuer so a Date can be passed directly as a
// query argument for DATE columns.
func (d Date) Value() (driver.Value, error) {
    return d.Format(DateLayout), nil
}

// Scan implements sql.Scanner. With parseTime=true the MySQL driver
// yields time.Time for DATE columns; string and []byte are accepted for
// drivers that do not parse.
func (d *Date) Scan(src interface{}) error {
    switch v := src.(type) {
    case time.Time:
        d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
        return nil
    case []byte:
        parsed, err := ParseDate(string(v))
        if err != nil {
            return err
        }
        *d = parsed
        return nil
    case string:
        parsed, err := ParseDate(v)
        if err != nil {
            return err
        }
        *d = parsed
        return nil
    default:
        return fmt.Errorf("cannot scan %T into Date", src)
    }
}

// DateRange is a half-open [Checkin, Checkout) interval of calendar
// days. Checkout is exclusive: a room vacated on a date can be
// re-booked the same day.
type DateRange struct {
    Checkin  Date
    Checkout Date
}

// Valid reports whether the range holds at least one night, i.e.
// Checkin < Checkout. Zero-length and inverted ranges are invalid.
func (r DateRange) Valid() bool {
    return r.Checkin.Before(r.Checkout.Time)
}

// Overlaps reports whether two half-open ranges share at least one
// night. Boundary-touching ranges (one's checkout equals the other's
// checkin) do not overlap.
func (r DateRange) Overlaps(o DateRange) bool {
    return r.Checkin.Before(o.Checkout.Time) && o.Checkin.Before(r.Checkout.Time)
}

// String renders the range as "checkin..checkout".
func (r DateRange) String() string {
    return r.Checkin.String() + ".." + r.Checkout.String()
}
