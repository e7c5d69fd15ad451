package repository

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

func testDate(t *testing.T, s string) model.Date {
    t.Helper()
    d, err := model.ParseDate(s)
    require.NoError(t, err)
    return d
}

func testRange(t *testing.T, checkin, checkout string) model.DateRange {
    t.Helper()
    return model.DateRange{Checkin: testDate(t, checkin), Checkout: testDate(t, checkout)}
}

func seededStore() *MemoryStore {
    single := model.RoomType{ID: 1, Name: "Single", GuestCapacity: 1, Price: 50}
    double := model.RoomType{ID: 2, Name: "Double", GuestCapacity: 2, Price: 80}
    return NewMemoryStore(
        []model.RoomType{single, double},
        []model.Room{
            {Number: 101, Type: single},
            {Number: 102, Type: single},
            {Number: 201, Type: double},
        },
    )
}

func TestMemoryStoreInsertGuardsOverlap(t *testing.T) {
    ctx := context.Background()
    store := seededStore()

    first := &model.Reservation{
        ID:      "res-1",
        Room:    101,
        Checkin: testDate(t, "2024-07-01"), Checkout: testDate(t, "2024-07-05"),
        User: model.UserRef{ID: "u1"},
    }
    require.NoError(t, store.Insert(ctx, first))
    assert.False(t, first.CreatedAt.IsZero())

    // overlapping stay on the same room is rejected
    overlapping := &model.Reservation{
        ID:      "res-2",
        Room:    101,
        Checkin: testDate(t, "2024-07-03"), Checkout: testDate(t, "2024-07-06"),
        User: model.UserRef{ID: "u2"},
    }
    assert.ErrorIs(t, store.Insert(ctx, overlapping), ErrConflict)

    // same interval on a different room is fine
    otherRoom := &model.Reservation{
        ID:      "res-3",
        Room:    102,
        Checkin: testDate(t, "2024-07-03"), Checkout: testDate(t, "2024-07-06"),
        User: model.UserRef{ID: "u2"},
    }
    assert.NoError(t, store.Insert(ctx, otherRoom))

    // back-to-back turnover on the same room is fine
    turnover := &model.Reservation{
        ID:      "res-4",
        Room:    101,
        Checkin: testDate(t, "2024-07-05"), Checkout: testDate(t, "2024-07-08"),
        User: model.UserRef{ID: "u3"},
    }
    assert.NoError(t, store.Insert(ctx, turnover))

    // unknown room
    ghost := &model.Reservation{ID: "res-5", Room: 999, Checkin: testDate(t, "2024-07-01"), Checkout: testDate(t, "2024-07-02")}
    assert.ErrorIs(t, store.Insert(ctx, ghost), ErrNotFound)
}

func TestMemoryStoreInsertBusyWhenScopeHeld(t *testing.T) {
    store := seededStore()

    // occupy room 101's write scope, as a stalled writer would
    store.roomScopes[101] <- struct{}{}
    defer func() { <-store.roomScopes[101] }()

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
    defer cancel()
    res := &model.Reservation{
        ID:      "res-1",
        Room:    101,
        Checkin: testDate(t, "2024-07-01"), Checkout: testDate(t, "2024-07-03"),
        User: model.UserRef{ID: "u1"},
    }
    assert.ErrorIs(t, store.Insert(ctx, res), ErrBusy)

    // the bounded wait never blocks other rooms
    res.Room = 102
    assert.NoError(t, store.Insert(context.Background(), res))

    _, err := store.UpdateDates(context.Background(), res.ID, testRange(t, "2024-07-02", "2024-07-04"))
    assert.NoError(t, err)
}

func TestMemoryStoreBusyOnDeadContext(t *testing.T) {
    store := seededStore()

    // the scope is free, but a cancelled context must not acquire it
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    res := &model.Reservation{
        ID:      "res-1",
        Room:    101,
        Checkin: testDate(t, "2024-07-01"), Checkout: testDate(t, "2024-07-03"),
        User: model.UserRef{ID: "u1"},
    }
    assert.ErrorIs(t, store.Insert(ctx, res), ErrBusy)
    assert.Empty(t, store.All())

    require.NoError(t, store.Insert(context.Background(), res))
    _, err := store.UpdateDates(ctx, "res-1", testRange(t, "2024-07-02", "2024-07-04"))
    assert.ErrorIs(t, err, ErrBusy)
}

func TestMemoryStoreUpdateDatesExcludesSelf(t *testing.T) {
    ctx := context.Background()
    store := seededStore()

    res := &model.Reservation{
        ID:      "res-1",
        Room:    101,
        Checkin: testDate(t, "2024-06-01"), Checkout: testDate(t, "2024-06-03"),
        User: model.UserRef{ID: "u1"},
    }
    require.NoError(t, store.Insert(ctx, res))

    // shifting into an interval overlapping only itself succeeds
    updated, err := store.UpdateDates(ctx, "res-1", testRange(t, "2024-06-02", "2024-06-04"))
    require.NoError(t, err)
    assert.Equal(t, "2024-06-02", updated.Checkin.String())
    assert.Equal(t, "2024-06-04", updated.Checkout.String())
    assert.Equal(t, 101, updated.Room)

    // a second reservation blocks the move
    other := &model.Reservation{
        ID:      "res-2",
        Room:    101,
        Checkin: testDate(t, "2024-06-10"), Checkout: testDate(t, "2024-06-12"),
        User: model.UserRef{ID: "u2"},
    }
    require.NoError(t, store.Insert(ctx, other))
    _, err = store.UpdateDates(ctx, "res-1", testRange(t, "2024-06-11", "2024-06-13"))
    assert.ErrorIs(t, err, ErrConflict)

    _, err = store.UpdateDates(ctx, "missing", testRange(t, "2024-06-01", "2024-06-02"))
    assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreQueries(t *testing.T) {
    ctx := context.Background()
    store := seededStore()

    require.NoError(t, store.Insert(ctx, &model.Reservation{
        ID: "res-1", Room: 101,
        Checkin: testDate(t, "2024-07-10"), Checkout: testDate(t, "2024-07-12"),
        User: model.UserRef{ID: "u1", Name: "Ann"},
    }))
    require.NoError(t, store.Insert(ctx, &model.Reservation{
        ID: "res-2", Room: 102,
        Checkin: testDate(t, "2024-07-01"), Checkout: testDate(t, "2024-07-03"),
        User: model.UserRef{ID: "u1", Name: "Ann"},
    }))

    got, err := store.GetByID(ctx, "res-1")
    require.NoError(t, err)
    assert.Equal(t, 101, got.Room)
    _, err = store.GetByID(ctx, "nope")
    assert.ErrorIs(t, err, ErrNotFound)

    list, err := store.ListByUser(ctx, "u1")
    require.NoError(t, err)
    require.Len(t, list, 2)
    // ordered by checkin date
    assert.Equal(t, "res-2", list[0].ID)
    assert.Equal(t, "res-1", list[1].ID)

    busy, err := store.OverlappingRooms(ctx, testRange(t, "2024-07-02", "2024-07-11"))
    require.NoError(t, err)
    assert.ElementsMatch(t, []int{101, 102}, busy)

    require.NoError(t, store.Delete(ctx, "res-1"))
    assert.ErrorIs(t, store.Delete(ctx, "res-1"), ErrNotFound)
}
