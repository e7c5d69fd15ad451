package booking

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

var (
    typeSingle = model.RoomType{ID: 1, Name: "Single", GuestCapacity: 1, Price: 50}
    typeDouble = model.RoomType{ID: 2, Name: "Double", GuestCapacity: 2, Price: 80}
    typeSuite  = model.RoomType{ID: 3, Name: "Suite", GuestCapacity: 4, Price: 200}
)

// newStore seeds the inventory used across the engine tests:
// Singles 101-104, Doubles 201-202, one Suite 301.
func newStore() *repository.MemoryStore {
    return repository.NewMemoryStore(
        []model.RoomType{typeSingle, typeDouble, typeSuite},
        []model.Room{
            {Number: 101, Type: typeSingle},
            {Number: 102, Type: typeSingle},
            {Number: 103, Type: typeSingle},
            {Number: 104, Type: typeSingle},
            {Number: 201, Type: typeDouble},
            {Number: 202, Type: typeDouble},
            {Number: 301, Type: typeSuite},
        },
    )
}

func date(t *testing.T, s string) model.Date {
    t.Helper()
    d, err := model.ParseDate(s)
    require.NoError(t, err)
    return d
}

func dates(t *testing.T, checkin, checkout string) model.DateRange {
    t.Helper()
    return model.DateRange{Checkin: date(t, checkin), Checkout: date(t, checkout)}
}

func typeNames(types []model.RoomType) []string {
    names := make([]string, 0, len(types))
    for _, rt := range types {
        names = append(names, rt.Name)
    }
    return names
}

func roomNumbers(rooms []model.Room) []int {
    nums := make([]int, 0, len(rooms))
    for _, rm := range rooms {
        nums = append(nums, rm.Number)
    }
    return nums
}

func TestRoomTypesAvailableEmptyHotel(t *testing.T) {
    ctx := context.Background()
    store := newStore()
    engine := NewAvailability(store, store)

    types, err := engine.RoomTypesAvailable(ctx, dates(t, "2024-07-01", "2024-07-03"), 1)
    require.NoError(t, err)
    assert.Contains(t, typeNames(types), "Single")
    assert.Contains(t, typeNames(types), "Double")
    assert.Contains(t, typeNames(types), "Suite")
}

func TestRoomTypesAvailableCapacityFilter(t *testing.T) {
    ctx := context.Background()
    store := newStore()
    engine := NewAvailability(store, store)

    types, err := engine.RoomTypesAvailable(ctx, dates(t, "2024-07-01", "2024-07-03"), 3)
    require.NoError(t, err)
    assert.Equal(t, []string{"Suite"}, typeNames(types))
}

func TestRoomTypesAvailableExcludesFullyBookedType(t *testing.T) {
    ctx := context.Background()
    store := newStore()
    engine := NewAvailability(store, store)
    stay := dates(t, "2024-07-01", "2024-07-05")

    // take both Doubles for the interval
    for i, room := range []int{201, 202} {
        require.NoError(t, store.Insert(ctx, &model.Reservation{
            ID: string(rune('a'+i)), Room: room,
            Checkin: stay.Checkin, Checkout: stay.Checkout,
            User: model.UserRef{ID: "u1"},
        }))
    }

    types, err := engine.RoomTypesAvailable(ctx, stay, 2)
    require.NoError(t, err)
    assert.NotContains(t, typeNames(types), "Double")
    assert.Contains(t, typeNames(types), "Suite")

    // the type reappears for an interval starting on the checkout day
    types, err = engine.RoomTypesAvailable(ctx, dates(t, "2024-07-05", "2024-07-07"), 2)
    require.NoError(t, err)
    assert.Contains(t, typeNames(types), "Double")
}

func TestRoomTypesAvailableRejectsBadInput(t *testing.T) {
    ctx := context.Background()
    store := newStore()
    engine := NewAvailability(store, store)

    _, err := engine.RoomTypesAvailable(ctx, dates(t, "2024-07-03", "2024-07-01"), 1)
    assert.ErrorIs(t, err, ErrInvalidRange)
    _, err = engine.RoomTypesAvailable(ctx, dates(t, "2024-07-01", "2024-07-01"), 1)
    assert.ErrorIs(t, err, ErrInvalidRange)
    _, err = engine.RoomTypesAvailable(ctx, dates(t, "2024-07-01", "2024-07-03"), 0)
    assert.ErrorIs(t, err, ErrInvalidCapacity)
    _, err = engine.RoomTypesAvailable(ctx, dates(t, "2024-07-01", "2024-07-03"), -2)
    assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestRoomsAvailableOrderedAscending(t *testing.T) {
    ctx := context.Background()
    store := newStore()
    engine := NewAvailability(store, store)

    rooms, err := engine.RoomsAvailable(ctx, dates(t, "2024-07-01", "2024-07-03"), "Single")
    require.NoError(t, err)
    assert.Equal(t, []int{101, 102, 103, 104}, roomNumbers(rooms))
}

func TestRoomsAvailableExcludesOverlapping(t *testing.T) {
    ctx := context.Background()
    store := newStore()
    engine := NewAvailability(store, store)

    require.NoError(t, store.Insert(ctx, &model.Reservation{
        ID: "r1", Room: 102,
        Checkin: date(t, "2024-07-02"), Checkout: date(t, "2024-07-04"),
        User: model.UserRef{ID: "u1"},
    }))

    rooms, err := engine.RoomsAvailable(ctx, dates(t, "2024-07-01", "2024-07-03"), "Single")
    require.NoError(t, err)
    assert.Equal(t, []int{101, 103, 104}, roomNumbers(rooms))

    // every returned room has no stored overlapping reservation
    for _, rm := range rooms {
        overlapping, err := store.FindOverlapping(ctx, rm.Number, dates(t, "2024-07-01", "2024-07-03"), "")
        require.NoError(t, err)
        assert.Empty(t, overlapping)
    }

    // boundary touch: interval starting at the existing checkout sees all rooms
    rooms, err = engine.RoomsAvailable(ctx, dates(t, "2024-07-04", "2024-07-06"), "Single")
    require.NoError(t, err)
    assert.Equal(t, []int{101, 102, 103, 104}, roomNumbers(rooms))
}

func TestRoomsAvailableUnknownTypeIsEmptyNotError(t *testing.T) {
    ctx := context.Background()
    store := newStore()
    engine := NewAvailability(store, store)

    rooms, err := engine.RoomsAvailable(ctx, dates(t, "2024-07-01", "2024-07-03"), "Penthouse")
    require.NoError(t, err)
    assert.Empty(t, rooms)
}

func TestRoomsAvailableRejectsInvalidRange(t *testing.T) {
    ctx := context.Background()
    store := newStore()
    engine := NewAvailability(store, store)

    _, err := engine.RoomsAvailable(ctx, dates(t, "2024-07-03", "2024-07-03"), "Single")
    assert.ErrorIs(t, err, ErrInvalidRange)
}
