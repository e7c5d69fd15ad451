// Package handler exposes the HTTP layer of the reservation service.  It
// binds and validates request payloads, calls into the booking engine and
// maps the engine's error kinds onto HTTP status codes.  No business rule
// lives here; the handlers stay thin on purpose.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/queue"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/hotel-room-reservation/internal/service"
)

// ReservationHandler groups the engine pieces the reservation endpoints
// need: the orchestrator for booking, the lifecycle manager for existing
// reservations and the inventory for event enrichment.
type ReservationHandler struct {
	Booker    *booking.Booker
	Lifecycle *booking.Lifecycle
	Inventory repository.InventoryStore

	// PublishEvents toggles the reservation.confirmed publisher; tests
	// and broker-less deployments run with it off.
	PublishEvents bool
}

// NewReservationHandler constructs a ReservationHandler.  All dependencies
// must be non-nil.
func NewReservationHandler(booker *booking.Booker, lifecycle *booking.Lifecycle, inventory repository.InventoryStore, publishEvents bool) *ReservationHandler {
	if booker == nil || lifecycle == nil || inventory == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Booker:        booker,
		Lifecycle:     lifecycle,
		Inventory:     inventory,
		PublishEvents: publishEvents,
	}
}

// createReservationRequest is the body of POST /api/reservations.
type createReservationRequest struct {
	CheckinDate  string `json:"checkinDate" validate:"required"`
	CheckoutDate string `json:"checkoutDate" validate:"required"`
	RoomType     string `json:"roomType" validate:"required"`
	User         struct {
		ID            string `json:"id" validate:"required"`
		Name          string `json:"name" validate:"required"`
		Email         string `json:"email" validate:"required,email"`
		ContactNumber string `json:"contactNumber"`
	} `json:"user" validate:"required"`
}

// rescheduleRequest is the body of PUT /api/reservations/:reservationId.
// Only the stay dates can move; identity and room are immutable.
type rescheduleRequest struct {
	CheckinDate  string `json:"checkinDate" validate:"required"`
	CheckoutDate string `json:"checkoutDate" validate:"required"`
}

// CreateReservation handles POST /api/reservations.  It books the
// lowest-numbered free room of the requested type for [checkin, checkout)
// and returns 201 with the stored reservation.  A confirmed booking also
// publishes a reservation.confirmed event; publishing is best-effort and
// never fails the request.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var body createReservationRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	rng, err := parseRange(body.CheckinDate, body.CheckoutDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format, want YYYY-MM-DD"})
	}
	user := model.UserRef{
		ID:            body.User.ID,
		Name:          body.User.Name,
		Email:         body.User.Email,
		ContactNumber: body.User.ContactNumber,
	}

	res, err := h.Booker.Book(c.Request().Context(), rng, body.RoomType, user)
	if err != nil {
		return respondEngineError(c, err)
	}

	if h.PublishEvents {
		h.publishConfirmed(res, body.RoomType)
	}
	return c.JSON(http.StatusCreated, res)
}

// GetReservation handles GET /api/reservations/:reservationId.
func (h *ReservationHandler) GetReservation(c echo.Context) error {
	res, err := h.Lifecycle.Get(c.Request().Context(), c.Param("reservationId"))
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ListUserReservations handles GET /api/reservations/users/:userId.  A
// user with no reservations gets an empty items array, not a 404.
func (h *ReservationHandler) ListUserReservations(c echo.Context) error {
	items, err := h.Lifecycle.ListForUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// RescheduleReservation handles PUT /api/reservations/:reservationId.  The
// reservation keeps its room; only the interval moves, and only when the
// room is free for the new dates once the reservation's own stay is
// ignored.
func (h *ReservationHandler) RescheduleReservation(c echo.Context) error {
	var body rescheduleRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	rng, err := parseRange(body.CheckinDate, body.CheckoutDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format, want YYYY-MM-DD"})
	}
	res, err := h.Lifecycle.Reschedule(c.Request().Context(), c.Param("reservationId"), rng)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// DeleteReservation handles DELETE /api/reservations/:reservationId.  The
// row is removed outright; a second delete of the same id yields 404.
func (h *ReservationHandler) DeleteReservation(c echo.Context) error {
	if err := h.Lifecycle.Cancel(c.Request().Context(), c.Param("reservationId")); err != nil {
		return respondEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// publishConfirmed fires the reservation.confirmed event in the
// background.  The booking already committed; a broker outage is logged
// by the publisher and otherwise ignored.
func (h *ReservationHandler) publishConfirmed(res *model.Reservation, roomTypeName string) {
	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		Room:          res.Room,
		RoomType:      roomTypeName,
		UserID:        res.User.ID,
		UserEmail:     res.User.Email,
		CheckinDate:   res.Checkin.String(),
		CheckoutDate:  res.Checkout.String(),
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if rt, err := h.Inventory.RoomTypeByName(ctx, roomTypeName); err == nil {
			ev.Price = rt.Price
		}
		_ = queue_publisher.PublishReservationConfirmed(ctx, ev)
	}()
}

// parseRange parses two YYYY-MM-DD strings into a DateRange.  Range
// validity (checkin < checkout) is the engine's call, not the parser's.
func parseRange(checkin, checkout string) (model.DateRange, error) {
	in, err := model.ParseDate(checkin)
	if err != nil {
		return model.DateRange{}, err
	}
	out, err := model.ParseDate(checkout)
	if err != nil {
		return model.DateRange{}, err
	}
	return model.DateRange{Checkin: in, Checkout: out}, nil
}

// respondEngineError converts booking and repository error kinds into
// status codes: bad input 400, missing things 404, lost races 409 and
// overload or storage trouble 503.
func respondEngineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkinDate must be before checkoutDate"})
	case errors.Is(err, booking.ErrInvalidCapacity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guestCapacity must be a positive integer"})
	case errors.Is(err, booking.ErrUnknownRoomType):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown room type"})
	case errors.Is(err, booking.ErrNoRoomAvailable):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no room available for the requested interval"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room was taken by a concurrent booking, retry"})
	case errors.Is(err, repository.ErrBusy):
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "booking system busy, retry shortly"})
	case errors.Is(err, repository.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
