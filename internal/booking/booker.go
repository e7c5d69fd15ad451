package booking

import (
    "context"
    "errors"

    "github.com/google/uuid"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// Booker composes an availability lookup and a reservation insert into
// one logical operation. The availability read is optimistic; the
// store's guarded Insert re-validates non-overlap under the room's
// write scope, so two concurrent bookings for the same room and
// interval cannot both commit. When a candidate is lost to a
// concurrent writer the Booker moves on to the next one.
type Booker struct {
    inventory    repository.InventoryStore
    reservations repository.ReservationStore
    availability *Availability
}

// NewBooker returns a Booker over the given stores.
func NewBooker(inventory repository.InventoryStore, reservations repository.ReservationStore) *Booker {
    return &Booker{
        inventory:    inventory,
        reservations: reservations,
        availability: NewAvailability(inventory, reservations),
    }
}

// Book reserves the lowest-numbered available room of the named type
// for [checkin, checkout) on behalf of user. On success the persisted
// reservation, including its generated UUID, is returned.
//
// Failure kinds: ErrInvalidRange, ErrUnknownRoomType,
// ErrNoRoomAvailable (no candidate existed), repository.ErrConflict
// (every candidate was taken by concurrent writers during this call)
// and repository.ErrBusy (a write scope could not be acquired in time).
func (b *Booker) Book(ctx context.Context, rng model.DateRange, roomTypeName string, user model.UserRef) (*model.Reservation, error) {
    if !rng.Valid() {
        return nil, ErrInvalidRange
    }
    rt, err := b.inventory.RoomTypeByName(ctx, roomTypeName)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, ErrUnknownRoomType
        }
        return nil, err
    }

    candidates, err := b.availability.freeRoomsOfType(ctx, rng, rt.ID)
    if err != nil {
        return nil, err
    }
    if len(candidates) == 0 {
        return nil, ErrNoRoomAvailable
    }

    for _, rm := range candidates {
        res := &model.Reservation{
            ID:       uuid.NewString(),
            Room:     rm.Number,
            Checkin:  rng.Checkin,
            Checkout: rng.Checkout,
            User:     user,
        }
        err := b.reservations.Insert(ctx, res)
        if err == nil {
            return res, nil
        }
        if errors.Is(err, repository.ErrConflict) {
            // Lost the race for this room; try the next candidate.
            continue
        }
        return nil, err
    }
    // Every candidate was free when we looked and taken when we wrote.
    return nil, repository.ErrConflict
}
