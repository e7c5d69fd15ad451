package booking

import (
    "context"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// Lifecycle manages existing reservations: lookup, per-user listing,
// rescheduling and administrative cancellation. Rescheduling
// re-validates that the reservation's room is free for the new
// interval while excluding the reservation itself from the overlap
// check; identity and assigned room never change.
type Lifecycle struct {
    reservations repository.ReservationStore
}

// NewLifecycle returns a Lifecycle manager over the given store.
func NewLifecycle(reservations repository.ReservationStore) *Lifecycle {
    return &Lifecycle{reservations: reservations}
}

// Get fetches a reservation by ID. Returns repository.ErrNotFound when
// it does not exist.
func (l *Lifecycle) Get(ctx context.Context, id string) (*model.Reservation, error) {
    return l.reservations.GetByID(ctx, id)
}

// ListForUser returns a user's reservations ordered by checkin date.
// A user with no reservations gets an empty list.
func (l *Lifecycle) ListForUser(ctx context.Context, userID string) ([]model.Reservation, error) {
    return l.reservations.ListByUser(ctx, userID)
}

// Reschedule moves a reservation to a new interval on its current
// room. Failure kinds: ErrInvalidRange, repository.ErrNotFound,
// ErrNoRoomAvailable when another reservation holds the room during
// the new interval, repository.ErrConflict when the guarded update
// lost a race after the pre-check passed.
func (l *Lifecycle) Reschedule(ctx context.Context, id string, rng model.DateRange) (*model.Reservation, error) {
    if !rng.Valid() {
        return nil, ErrInvalidRange
    }
    cur, err := l.reservations.GetByID(ctx, id)
    if err != nil {
        return nil, err
    }
    // Re-validate availability for the new interval, ignoring the
    // reservation's own stay (it must not conflict with itself).
    overlapping, err := l.reservations.FindOverlapping(ctx, cur.Room, rng, id)
    if err != nil {
        return nil, err
    }
    if len(overlapping) > 0 {
        return nil, ErrNoRoomAvailable
    }
    return l.reservations.UpdateDates(ctx, id, rng)
}

// Cancel removes a reservation, freeing its room for future overlap
// checks. Administrative action outside the core invariant; it is not
// part of the booking contract and carries no guard beyond existence.
func (l *Lifecycle) Cancel(ctx context.Context, id string) error {
    return l.reservations.Delete(ctx, id)
}
