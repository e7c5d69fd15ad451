// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a room reservation is
// successfully confirmed. It carries enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type ReservationConfirmedEvent struct {
	ReservationID string  `json:"reservation_id"`
	Room          int     `json:"room"`
	RoomType      string  `json:"room_type"`
	Price         float64 `json:"price"`
	UserID        string  `json:"user_id"`
	UserEmail     string  `json:"user_email"`
	CheckinDate   string  `json:"checkin_date"`
	CheckoutDate  string  `json:"checkout_date"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
