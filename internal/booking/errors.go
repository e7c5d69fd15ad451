// Package booking implements the availability and booking engine: the
// logic that determines which rooms and room types are free for a date
// interval and atomically turns an availability check into a
// reservation without double-booking. It depends only on the store
// contracts in internal/repository, never on a storage technology.
package booking

import "errors"

// ErrInvalidRange is returned when checkin >= checkout. Handlers
// should translate this into an HTTP 400 response.
var ErrInvalidRange = errors.New("invalid date range")

// ErrInvalidCapacity is returned for a guest capacity of zero or less.
var ErrInvalidCapacity = errors.New("invalid guest capacity")

// ErrUnknownRoomType is returned by Book when the requested type name
// does not resolve. Availability queries treat an unknown name as an
// empty result instead.
var ErrUnknownRoomType = errors.New("unknown room type")

// ErrNoRoomAvailable is returned when no room of the requested type is
// free for the interval, or when a rescheduled reservation's room is
// taken by a different reservation during the new interval.
var ErrNoRoomAvailable = errors.New("no room available")
