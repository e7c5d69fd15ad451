package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/hotel-room-reservation/internal/handler" // import the handlers that implement the HTTP layer
)

// RegisterRoutes wires every endpoint of the reservation API onto the
// provided Echo instance.  The rate limiter applies to the whole API
// group; the response cache applies only to the plain inventory listing.
// Availability answers must always be computed fresh, so any request
// carrying query parameters bypasses the cache.
func RegisterRoutes(e *echo.Echo, res *handler.ReservationHandler, avail *handler.AvailabilityHandler, rate, cache echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	g := e.Group("/api/reservations")
	if rate != nil {
		g.Use(rate)
	}

	// Availability reads, never cached.
	g.GET("/roomTypes", avail.ListAvailableRoomTypes)

	// Room inventory listing; doubles as the availability query when
	// checkinDate/checkoutDate/roomType are present, hence the
	// listing-only cache wrapper.
	g.GET("/rooms", avail.ListRooms, listingOnly(cache))

	// Booking and lifecycle.
	g.POST("", res.CreateReservation)
	g.GET("/users/:userId", res.ListUserReservations)
	g.GET("/:reservationId", res.GetReservation)
	g.PUT("/:reservationId", res.RescheduleReservation)
	g.DELETE("/:reservationId", res.DeleteReservation)
}

// listingOnly applies mw only to requests without query parameters.  A
// nil middleware degrades to a pass-through.
func listingOnly(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		cached := next
		if mw != nil {
			cached = mw(next)
		}
		return func(c echo.Context) error {
			if c.Request().URL.RawQuery != "" {
				return next(c)
			}
			return cached(c)
		}
	}
}
