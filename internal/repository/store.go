package repository

import (
    "context"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// InventoryStore exposes the read-mostly reference data: rooms and
// room types. Implementations must return rooms in ascending room
// number order so "pick the first available" is deterministic.
type InventoryStore interface {
    // ListRooms returns every room with its type, ordered by number.
    ListRooms(ctx context.Context) ([]model.Room, error)
    // ListRoomTypes returns every room type.
    ListRoomTypes(ctx context.Context) ([]model.RoomType, error)
    // RoomTypeByName resolves a type by its unique name. Returns
    // ErrNotFound when no such type exists.
    RoomTypeByName(ctx context.Context, name string) (*model.RoomType, error)
    // RoomsByType returns the rooms of one type, ordered by number.
    RoomsByType(ctx context.Context, typeID uint64) ([]model.Room, error)
}

// ReservationStore is the mutable ledger of bookings. Insert and
// UpdateDates are guarded writes: the implementation serializes
// writers on the target room, re-checks the no-overlap invariant
// inside that scope and returns ErrConflict when the write would
// double-book, or ErrBusy when the scope could not be acquired within
// its bounded wait. Reads are plain queries over committed data.
type ReservationStore interface {
    // FindOverlapping returns the reservations on a room whose
    // [checkin, checkout) interval overlaps rng. excludeID, when
    // non-empty, omits that reservation from the result so a
    // reservation never conflicts with itself.
    FindOverlapping(ctx context.Context, room int, rng model.DateRange, excludeID string) ([]model.Reservation, error)
    // OverlappingRooms returns the distinct room numbers that have at
    // least one reservation overlapping rng.
    OverlappingRooms(ctx context.Context, rng model.DateRange) ([]int, error)
    // Insert persists a new reservation under the room's write scope.
    Insert(ctx context.Context, res *model.Reservation) error
    // UpdateDates moves an existing reservation to a new interval
    // under the room's write scope. Identity and room are immutable.
    UpdateDates(ctx context.Context, id string, rng model.DateRange) (*model.Reservation, error)
    // GetByID fetches one reservation. Returns ErrNotFound when absent.
    GetByID(ctx context.Context, id string) (*model.Reservation, error)
    // ListByUser returns a user's reservations ordered by checkin date.
    ListByUser(ctx context.Context, userID string) ([]model.Reservation, error)
    // Delete removes a reservation, freeing its room for future
    // overlap checks. Returns ErrNotFound when absent.
    Delete(ctx context.Context, id string) error
}
