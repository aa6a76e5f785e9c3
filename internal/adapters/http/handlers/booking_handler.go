package handlers

import (
	"errors"
	"time"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/http/middleware"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/domain"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/services"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles booking lifecycle endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookingRequest represents a booking create body
type BookingRequest struct {
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

// BookingPatchRequest represents a booking update body; absent fields keep
// their stored value
type BookingPatchRequest struct {
	CheckInDate  *string `json:"checkInDate"`
	CheckOutDate *string `json:"checkOutDate"`
}

// parseDate accepts a bare date or a full RFC3339 timestamp
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// List returns the caller's bookings, or all bookings for an admin
func (h *BookingHandler) List(c *fiber.Ctx) error {
	actor := middleware.Principal(c)
	if actor == nil {
		return response.Unauthorized(c, "Not authorized to access this route")
	}

	bookings, err := h.bookingService.List(c.Context(), actor)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.SuccessList(c, len(bookings), toBookingResponses(bookings))
}

// Get returns one booking
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	actor := middleware.Principal(c)
	id, err := c.ParamsInt("id")
	if actor == nil || err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking id")
	}

	booking, err := h.bookingService.Get(c.Context(), uint(id), actor)
	if err != nil {
		return h.mapError(c, err, "Failed to get booking")
	}

	return response.Success(c, "", booking.ToResponse())
}

// Create books a stay at the hotel named in the path
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	actor := middleware.Principal(c)
	hotelID, err := c.ParamsInt("hotelId")
	if actor == nil || err != nil || hotelID < 1 {
		return response.BadRequest(c, "Invalid hotel id")
	}

	var req BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CheckInDate == "" || req.CheckOutDate == "" {
		return response.BadRequest(c, "Please provide check-in and check-out dates")
	}

	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		return response.BadRequest(c, "Invalid check-in date")
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		return response.BadRequest(c, "Invalid check-out date")
	}

	booking, err := h.bookingService.Create(c.Context(), uint(hotelID), actor, checkIn, checkOut)
	if err != nil {
		return h.mapError(c, err, "Failed to create booking")
	}

	return response.Created(c, "Booking created successfully", booking.ToResponse())
}

// Update applies a partial date change to a booking
func (h *BookingHandler) Update(c *fiber.Ctx) error {
	actor := middleware.Principal(c)
	id, err := c.ParamsInt("id")
	if actor == nil || err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking id")
	}

	var req BookingPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	patch := &services.BookingPatch{}
	if req.CheckInDate != nil {
		t, err := parseDate(*req.CheckInDate)
		if err != nil {
			return response.BadRequest(c, "Invalid check-in date")
		}
		patch.CheckInDate = &t
	}
	if req.CheckOutDate != nil {
		t, err := parseDate(*req.CheckOutDate)
		if err != nil {
			return response.BadRequest(c, "Invalid check-out date")
		}
		patch.CheckOutDate = &t
	}

	booking, err := h.bookingService.Update(c.Context(), uint(id), actor, patch)
	if err != nil {
		return h.mapError(c, err, "Failed to update booking")
	}

	return response.Success(c, "Booking updated successfully", booking.ToResponse())
}

// Delete removes a booking
func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.Principal(c)
	id, err := c.ParamsInt("id")
	if actor == nil || err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking id")
	}

	if err := h.bookingService.Delete(c.Context(), uint(id), actor); err != nil {
		return h.mapError(c, err, "Failed to delete booking")
	}

	return response.Success(c, "Booking deleted successfully", nil)
}

// ListForHotel returns every booking at one hotel (admin)
func (h *BookingHandler) ListForHotel(c *fiber.Ctx) error {
	hotelID, err := c.ParamsInt("hotelId")
	if err != nil || hotelID < 1 {
		return response.BadRequest(c, "Invalid hotel id")
	}

	bookings, err := h.bookingService.ListForHotel(c.Context(), uint(hotelID))
	if err != nil {
		return h.mapError(c, err, "Failed to list bookings")
	}

	return response.SuccessList(c, len(bookings), toBookingResponses(bookings))
}

// mapError translates service errors into HTTP responses
func (h *BookingHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrHotelNotFound):
		return response.NotFound(c, "Hotel not found")
	case errors.Is(err, domain.ErrBookingNotFound):
		return response.NotFound(c, "Booking not found")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You are not authorized to access this booking")
	case domain.IsValidation(err):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

func toBookingResponses(bookings []*models.Booking) []*models.BookingResponse {
	out := make([]*models.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ToResponse())
	}
	return out
}
