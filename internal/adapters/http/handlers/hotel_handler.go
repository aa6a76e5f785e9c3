package handlers

import (
	"errors"
	"strings"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/repositories"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/pagination"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HotelHandler handles hotel catalog endpoints
type HotelHandler struct {
	hotelRepo repositories.HotelRepository
}

// NewHotelHandler creates a new hotel handler
func NewHotelHandler(hotelRepo repositories.HotelRepository) *HotelHandler {
	return &HotelHandler{hotelRepo: hotelRepo}
}

// HotelRequest represents a hotel create/update body
type HotelRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Tel     string `json:"tel"`
}

func (r *HotelRequest) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "Name is required"
	}
	if len(r.Name) > 50 {
		return "Name cannot be more than 50 characters"
	}
	if strings.TrimSpace(r.Address) == "" {
		return "Address is required"
	}
	return ""
}

// List lists hotels with pagination (public)
func (h *HotelHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	hotels, total, err := h.hotelRepo.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list hotels")
	}

	return response.Success(c, "", pagination.NewPage(hotels, params, total))
}

// Get returns one hotel (public)
func (h *HotelHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hotel id")
	}

	hotel, err := h.hotelRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Hotel not found")
		}
		return response.InternalServerError(c, "Failed to get hotel")
	}

	return response.Success(c, "", hotel)
}

// Create adds a hotel (admin)
func (h *HotelHandler) Create(c *fiber.Ctx) error {
	var req HotelRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	hotel := &models.Hotel{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Tel:     strings.TrimSpace(req.Tel),
	}

	if err := h.hotelRepo.Create(c.Context(), hotel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Hotel name already exists")
		}
		return response.InternalServerError(c, "Failed to create hotel")
	}

	return response.Created(c, "Hotel created successfully", hotel)
}

// Update modifies a hotel (admin)
func (h *HotelHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hotel id")
	}

	var req HotelRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	hotel, err := h.hotelRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Hotel not found")
		}
		return response.InternalServerError(c, "Failed to get hotel")
	}

	hotel.Name = strings.TrimSpace(req.Name)
	hotel.Address = strings.TrimSpace(req.Address)
	hotel.Tel = strings.TrimSpace(req.Tel)

	if err := h.hotelRepo.Update(c.Context(), hotel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Hotel name already exists")
		}
		return response.InternalServerError(c, "Failed to update hotel")
	}

	return response.Success(c, "Hotel updated successfully", hotel)
}

// Delete removes a hotel (admin)
func (h *HotelHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hotel id")
	}

	if _, err := h.hotelRepo.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Hotel not found")
		}
		return response.InternalServerError(c, "Failed to get hotel")
	}

	if err := h.hotelRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete hotel")
	}

	return response.Success(c, "Hotel deleted successfully", nil)
}
