package model

import "time"

// Reservation books one room for a half-open date interval on behalf
// of one user. The invariant the whole engine exists to protect: for a
// fixed room number, no two stored reservations may have overlapping
// [checkin, checkout) intervals.
//
// Fields:
//  ID        – UUID primary identity, generated at booking time.
//  Room      – number of the booked room; immutable after creation.
//  Checkin   – first night of the stay (inclusive).
//  Checkout  – day of departure (exclusive).
//  User      – denormalized copy of the booking user.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
    ID        string    `json:"id"`           // reservations.id
    Room      int       `json:"room"`         // reservations.room
    Checkin   Date      `json:"checkinDate"`  // reservations.checkin_date
    Checkout  Date      `json:"checkoutDate"` // reservations.checkout_date
    User      UserRef   `json:"user"`         // reservations.user_info
    CreatedAt time.Time `json:"-"`            // reservations.created_at
    UpdatedAt time.Time `json:"-"`            // reservations.updated_at
}

// Range returns the reservation's stay interval.
func (r Reservation) Range() DateRange {
    return DateRange{Checkin: r.Checkin, Checkout: r.Checkout}
}
