package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

func TestLifecycleGetAndList(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	booker := NewBooker(store, store)
	lc := NewLifecycle(store)

	booked, err := booker.Book(ctx, dates(t, "2024-07-10", "2024-07-12"), "Single", model.UserRef{ID: "u1"})
	require.NoError(t, err)
	_, err = booker.Book(ctx, dates(t, "2024-07-01", "2024-07-03"), "Double", model.UserRef{ID: "u1"})
	require.NoError(t, err)

	got, err := lc.Get(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, booked.ID, got.ID)
	assert.Equal(t, booked.Room, got.Room)

	_, err = lc.Get(ctx, "no-such-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := lc.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// ordered by checkin date
	assert.Equal(t, "2024-07-01", list[0].Checkin.String())
	assert.Equal(t, "2024-07-10", list[1].Checkin.String())

	empty, err := lc.ListForUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRescheduleShiftsOverItsOwnStay(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	booker := NewBooker(store, store)
	lc := NewLifecycle(store)

	booked, err := booker.Book(ctx, dates(t, "2024-06-01", "2024-06-03"), "Suite", model.UserRef{ID: "u1"})
	require.NoError(t, err)

	// the new interval overlaps the old one; only the reservation's
	// own stay occupies the room, so the shift must succeed
	updated, err := lc.Reschedule(ctx, booked.ID, dates(t, "2024-06-02", "2024-06-04"))
	require.NoError(t, err)
	assert.Equal(t, booked.ID, updated.ID)
	assert.Equal(t, booked.Room, updated.Room)
	assert.Equal(t, "2024-06-02", updated.Checkin.String())
	assert.Equal(t, "2024-06-04", updated.Checkout.String())
}

func TestRescheduleRefusedWhenRoomTaken(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	booker := NewBooker(store, store)
	lc := NewLifecycle(store)

	first, err := booker.Book(ctx, dates(t, "2024-06-01", "2024-06-03"), "Suite", model.UserRef{ID: "u1"})
	require.NoError(t, err)
	_, err = booker.Book(ctx, dates(t, "2024-06-05", "2024-06-08"), "Suite", model.UserRef{ID: "u2"})
	require.NoError(t, err)

	// the only Suite is held by the second guest for the target dates
	_, err = lc.Reschedule(ctx, first.ID, dates(t, "2024-06-04", "2024-06-06"))
	assert.ErrorIs(t, err, ErrNoRoomAvailable)

	// the original stay is untouched
	got, err := lc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.Checkin.String())
	assert.Equal(t, "2024-06-03", got.Checkout.String())
}

func TestRescheduleRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	lc := NewLifecycle(store)

	_, err := lc.Reschedule(ctx, "whatever", dates(t, "2024-06-03", "2024-06-03"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = lc.Reschedule(ctx, "no-such-id", dates(t, "2024-06-01", "2024-06-03"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCancelFreesTheRoom(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	booker := NewBooker(store, store)
	lc := NewLifecycle(store)
	stay := dates(t, "2024-06-01", "2024-06-03")

	booked, err := booker.Book(ctx, stay, "Suite", model.UserRef{ID: "u1"})
	require.NoError(t, err)

	_, err = booker.Book(ctx, stay, "Suite", model.UserRef{ID: "u2"})
	require.ErrorIs(t, err, ErrNoRoomAvailable)

	require.NoError(t, lc.Cancel(ctx, booked.ID))

	rebooked, err := booker.Book(ctx, stay, "Suite", model.UserRef{ID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, booked.Room, rebooked.Room)

	// cancelling again reports the missing reservation
	assert.ErrorIs(t, lc.Cancel(ctx, booked.ID), repository.ErrNotFound)
}
