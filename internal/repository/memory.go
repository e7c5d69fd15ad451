package repository

import (
    "context"
    "sort"
    "sync"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// MemoryStore is an in-process implementation of both store contracts.
// It backs the test suite and DB-less runs. Unlike the in-memory map
// the original system kept alongside its database, this store is the
// single source of truth for its data and enforces the same guarded
// write semantics as the MySQL adapter: a per-room scope serializes
// conflicting writers, the no-overlap invariant is re-checked inside
// that scope, and acquisition is bounded by the caller's context.
type MemoryStore struct {
    mu           sync.RWMutex
    roomTypes    []model.RoomType
    rooms        []model.Room
    reservations map[string]model.Reservation
    roomScopes   map[int]chan struct{}
}

// NewMemoryStore seeds a MemoryStore with reference data. Rooms are
// kept sorted by number so listings are deterministic.
func NewMemoryStore(types []model.RoomType, rooms []model.Room) *MemoryStore {
    sorted := make([]model.Room, len(rooms))
    copy(sorted, rooms)
    sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

    scopes := make(map[int]chan struct{}, len(sorted))
    for _, rm := range sorted {
        scopes[rm.Number] = make(chan struct{}, 1)
    }
    return &MemoryStore{
        roomTypes:    types,
        rooms:        sorted,
        reservations: make(map[string]model.Reservation),
        roomScopes:   scopes,
    }
}

// ListRooms returns every room ordered by number.
func (s *MemoryStore) ListRooms(ctx context.Context) ([]model.Room, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.Room, len(s.rooms))
    copy(out, s.rooms)
    return out, nil
}

// ListRoomTypes returns every room type.
func (s *MemoryStore) ListRoomTypes(ctx context.Context) ([]model.RoomType, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.RoomType, len(s.roomTypes))
    copy(out, s.roomTypes)
    return out, nil
}

// RoomTypeByName resolves a type by name or returns ErrNotFound.
func (s *MemoryStore) RoomTypeByName(ctx context.Context, name string) (*model.RoomType, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    for _, rt := range s.roomTypes {
        if rt.Name == name {
            cp := rt
            return &cp, nil
        }
    }
    return nil, ErrNotFound
}

// RoomsByType returns the rooms of one type ordered by number.
func (s *MemoryStore) RoomsByType(ctx context.Context, typeID uint64) ([]model.Room, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.Room, 0)
    for _, rm := range s.rooms {
        if rm.Type.ID == typeID {
            out = append(out, rm)
        }
    }
    return out, nil
}

// FindOverlapping returns reservations on a room overlapping rng,
// excluding excludeID when non-empty.
func (s *MemoryStore) FindOverlapping(ctx context.Context, room int, rng model.DateRange, excludeID string) ([]model.Reservation, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.overlappingLocked(room, rng, excludeID), nil
}

// OverlappingRooms returns the room numbers with at least one
// reservation overlapping rng.
func (s *MemoryStore) OverlappingRooms(ctx context.Context, rng model.DateRange) ([]int, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    seen := make(map[int]bool)
    var nums []int
    for _, res := range s.reservations {
        if !seen[res.Room] && rng.Overlaps(res.Range()) {
            seen[res.Room] = true
            nums = append(nums, res.Room)
        }
    }
    return nums, nil
}

// Insert persists a new reservation under the room's write scope.
func (s *MemoryStore) Insert(ctx context.Context, res *model.Reservation) error {
    release, err := s.acquireRoom(ctx, res.Room)
    if err != nil {
        return err
    }
    defer release()

    s.mu.Lock()
    defer s.mu.Unlock()
    if len(s.overlappingLocked(res.Room, res.Range(), "")) > 0 {
        return ErrConflict
    }
    now := time.Now().UTC()
    res.CreatedAt = now
    res.UpdatedAt = now
    s.reservations[res.ID] = *res
    return nil
}

// UpdateDates moves a reservation to a new interval under the room's
// write scope, excluding the reservation itself from the overlap check.
func (s *MemoryStore) UpdateDates(ctx context.Context, id string, rng model.DateRange) (*model.Reservation, error) {
    s.mu.RLock()
    cur, ok := s.reservations[id]
    s.mu.RUnlock()
    if !ok {
        return nil, ErrNotFound
    }

    release, err := s.acquireRoom(ctx, cur.Room)
    if err != nil {
        return nil, err
    }
    defer release()

    s.mu.Lock()
    defer s.mu.Unlock()
    cur, ok = s.reservations[id]
    if !ok {
        return nil, ErrNotFound
    }
    if len(s.overlappingLocked(cur.Room, rng, id)) > 0 {
        return nil, ErrConflict
    }
    cur.Checkin = rng.Checkin
    cur.Checkout = rng.Checkout
    cur.UpdatedAt = time.Now().UTC()
    s.reservations[id] = cur
    return &cur, nil
}

// GetByID fetches one reservation or ErrNotFound.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    res, ok := s.reservations[id]
    if !ok {
        return nil, ErrNotFound
    }
    return &res, nil
}

// ListByUser returns a user's reservations ordered by checkin date.
func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.Reservation, 0)
    for _, res := range s.reservations {
        if res.User.ID == userID {
            out = append(out, res)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Checkin.Before(out[j].Checkin.Time) })
    return out, nil
}

// Delete removes a reservation or returns ErrNotFound.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.reservations[id]; !ok {
        return ErrNotFound
    }
    delete(s.reservations, id)
    return nil
}

// All returns a snapshot of every stored reservation. Test helper for
// checking the pairwise no-overlap invariant after concurrent load.
func (s *MemoryStore) All() []model.Reservation {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.Reservation, 0, len(s.reservations))
    for _, res := range s.reservations {
        out = append(out, res)
    }
    return out
}

// acquireRoom takes the per-room write scope, waiting no longer than
// the context allows. Unknown rooms surface as ErrNotFound, an expired
// wait as ErrBusy.
func (s *MemoryStore) acquireRoom(ctx context.Context, room int) (func(), error) {
    s.mu.RLock()
    scope, ok := s.roomScopes[room]
    s.mu.RUnlock()
    if !ok {
        return nil, ErrNotFound
    }
    // A dead context must never acquire the scope, even when it is
    // free; select picks a ready case at random.
    if ctx.Err() != nil {
        return nil, ErrBusy
    }
    select {
    case scope <- struct{}{}:
        return func() { <-scope }, nil
    case <-ctx.Done():
        return nil, ErrBusy
    }
}

// overlappingLocked collects overlapping reservations for a room.
// Callers must hold s.mu.
func (s *MemoryStore) overlappingLocked(room int, rng model.DateRange, excludeID string) []model.Reservation {
    var out []model.Reservation
    for _, res := range s.reservations {
        if res.Room != room || res.ID == excludeID {
            continue
        }
        if rng.Overlaps(res.Range()) {
            out = append(out, res)
        }
    }
    return out
}

var (
    _ InventoryStore   = (*MemoryStore)(nil)
    _ ReservationStore = (*MemoryStore)(nil)
)
