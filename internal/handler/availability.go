package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// AvailabilityHandler serves the read-only inventory and availability
// endpoints.  Availability answers are computed fresh on every request;
// only the plain inventory listing may sit behind the response cache.
type AvailabilityHandler struct {
	Availability *booking.Availability
	Inventory    repository.InventoryStore
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(availability *booking.Availability, inventory repository.InventoryStore) *AvailabilityHandler {
	if availability == nil || inventory == nil {
		panic("nil dependency passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Availability: availability, Inventory: inventory}
}

// ListAvailableRoomTypes handles
// GET /api/reservations/roomTypes?checkinDate&checkoutDate&guestCapacity.
// It returns every room type with at least the requested capacity that
// still has a free room for the whole interval.
func (h *AvailabilityHandler) ListAvailableRoomTypes(c echo.Context) error {
	rng, err := parseRange(c.QueryParam("checkinDate"), c.QueryParam("checkoutDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkinDate and checkoutDate are required as YYYY-MM-DD"})
	}
	capStr := c.QueryParam("guestCapacity")
	if capStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guestCapacity is required"})
	}
	minCapacity, err := strconv.Atoi(capStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guestCapacity must be an integer"})
	}

	types, err := h.Availability.RoomTypesAvailable(c.Request().Context(), rng, minCapacity)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": types})
}

// ListRooms handles GET /api/reservations/rooms.  Without query
// parameters it returns the full room inventory with the embedded room
// type.  With checkinDate, checkoutDate and roomType it returns the free
// rooms of that type for the interval, ascending by room number; an
// unknown type name yields an empty list.
func (h *AvailabilityHandler) ListRooms(c echo.Context) error {
	checkin := c.QueryParam("checkinDate")
	checkout := c.QueryParam("checkoutDate")
	roomType := c.QueryParam("roomType")

	if checkin == "" && checkout == "" && roomType == "" {
		rooms, err := h.Inventory.ListRooms(c.Request().Context())
		if err != nil {
			return respondEngineError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": rooms})
	}

	if checkin == "" || checkout == "" || roomType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "availability queries need checkinDate, checkoutDate and roomType"})
	}
	rng, err := parseRange(checkin, checkout)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format, want YYYY-MM-DD"})
	}
	rooms, err := h.Availability.RoomsAvailable(c.Request().Context(), rng, roomType)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}
