package booking

import (
    "context"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// Availability computes room and room-type availability for a date
// interval. All operations are pure reads over committed data: they
// take no locks and may run fully concurrently with each other.
// Callers that need the answer to stay true through a write must go
// through the Booker, which re-validates under the room's write scope.
type Availability struct {
    inventory    repository.InventoryStore
    reservations repository.ReservationStore
}

// NewAvailability returns an Availability engine over the given stores.
func NewAvailability(inventory repository.InventoryStore, reservations repository.ReservationStore) *Availability {
    return &Availability{inventory: inventory, reservations: reservations}
}

// RoomTypesAvailable returns every room type with guestCapacity >=
// minCapacity for which at least one room of that type has zero
// reservations overlapping [checkin, checkout). The interval must be
// valid and the capacity positive.
func (a *Availability) RoomTypesAvailable(ctx context.Context, rng model.DateRange, minCapacity int) ([]model.RoomType, error) {
    if !rng.Valid() {
        return nil, ErrInvalidRange
    }
    if minCapacity <= 0 {
        return nil, ErrInvalidCapacity
    }

    types, err := a.inventory.ListRoomTypes(ctx)
    if err != nil {
        return nil, err
    }
    rooms, err := a.inventory.ListRooms(ctx)
    if err != nil {
        return nil, err
    }
    busy, err := a.busyRooms(ctx, rng)
    if err != nil {
        return nil, err
    }

    // A type qualifies when any of its rooms is outside the busy set.
    freeByType := make(map[uint64]bool)
    for _, rm := range rooms {
        if !busy[rm.Number] {
            freeByType[rm.Type.ID] = true
        }
    }

    available := make([]model.RoomType, 0)
    for _, rt := range types {
        if rt.GuestCapacity >= uint32(minCapacity) && freeByType[rt.ID] {
            available = append(available, rt)
        }
    }
    return available, nil
}

// RoomsAvailable returns the rooms of the named type with zero
// reservations overlapping [checkin, checkout), ordered by room number
// ascending. An unknown type name yields an empty result, not an
// error.
func (a *Availability) RoomsAvailable(ctx context.Context, rng model.DateRange, roomTypeName string) ([]model.Room, error) {
    if !rng.Valid() {
        return nil, ErrInvalidRange
    }
    rt, err := a.inventory.RoomTypeByName(ctx, roomTypeName)
    if err != nil {
        if err == repository.ErrNotFound {
            return []model.Room{}, nil
        }
        return nil, err
    }
    return a.freeRoomsOfType(ctx, rng, rt.ID)
}

// freeRoomsOfType lists the rooms of one type and subtracts those with
// an overlapping reservation. Order (ascending by number) comes from
// the inventory store and is preserved.
func (a *Availability) freeRoomsOfType(ctx context.Context, rng model.DateRange, typeID uint64) ([]model.Room, error) {
    rooms, err := a.inventory.RoomsByType(ctx, typeID)
    if err != nil {
        return nil, err
    }
    busy, err := a.busyRooms(ctx, rng)
    if err != nil {
        return nil, err
    }
    free := make([]model.Room, 0, len(rooms))
    for _, rm := range rooms {
        if !busy[rm.Number] {
            free = append(free, rm)
        }
    }
    return free, nil
}

func (a *Availability) busyRooms(ctx context.Context, rng model.DateRange) (map[int]bool, error) {
    nums, err := a.reservations.OverlappingRooms(ctx, rng)
    if err != nil {
        return nil, err
    }
    busy := make(map[int]bool, len(nums))
    for _, n := range nums {
        busy[n] = true
    }
    return busy, nil
}
