package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/repositories"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/domain"

	"gorm.io/gorm"
)

// BookingService handles booking lifecycle business logic
type BookingService struct {
	bookingRepo repositories.BookingRepository
	hotelRepo   repositories.HotelRepository

	// now is injectable so date-boundary rules can be tested at fixed clocks
	now func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo repositories.BookingRepository, hotelRepo repositories.HotelRepository) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		hotelRepo:   hotelRepo,
		now:         time.Now,
	}
}

// BookingPatch is a partial booking update; nil fields keep their stored value
type BookingPatch struct {
	CheckInDate  *time.Time `json:"checkInDate"`
	CheckOutDate *time.Time `json:"checkOutDate"`
}

// Create books a stay at hotelID for the acting user. Dates are validated
// against the booking rules and the night count is always computed server-side.
func (s *BookingService) Create(ctx context.Context, hotelID uint, actor *Principal, checkIn, checkOut time.Time) (*models.Booking, error) {
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, err
	}

	if err := domain.ValidateStay(checkIn, checkOut, s.now()); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		NumOfNights:  domain.ComputeNights(checkIn, checkOut),
		UserID:       actor.UserID,
		HotelID:      hotelID,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %d created by user %d (hotel %d, %d nights)",
		booking.ID, actor.UserID, hotelID, booking.NumOfNights)

	// reload so the hotel and owner come back preloaded
	return s.bookingRepo.GetByID(ctx, booking.ID)
}

// Get returns one booking. Non-admins can only see their own. A booking whose
// check-out has passed is purged first, so it reads as gone.
func (s *BookingService) Get(ctx context.Context, id uint, actor *Principal) (*models.Booking, error) {
	s.purgeExpired(ctx)

	booking, err := s.getOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Update applies a partial date change to a booking. The effective post-update
// dates are validated as a pair, so a patch cannot smuggle in an invalid stay.
func (s *BookingService) Update(ctx context.Context, id uint, actor *Principal, patch *BookingPatch) (*models.Booking, error) {
	booking, err := s.getOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	checkIn := booking.CheckInDate
	checkOut := booking.CheckOutDate
	if patch.CheckInDate != nil {
		checkIn = *patch.CheckInDate
	}
	if patch.CheckOutDate != nil {
		checkOut = *patch.CheckOutDate
	}

	if err := domain.ValidateStay(checkIn, checkOut, s.now()); err != nil {
		return nil, err
	}

	booking.CheckInDate = checkIn
	booking.CheckOutDate = checkOut
	booking.NumOfNights = domain.ComputeNights(checkIn, checkOut)

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return s.bookingRepo.GetByID(ctx, booking.ID)
}

// Delete removes a booking. Non-admins can only delete their own.
func (s *BookingService) Delete(ctx context.Context, id uint, actor *Principal) error {
	booking, err := s.getOwned(ctx, id, actor)
	if err != nil {
		return err
	}
	return s.bookingRepo.Delete(ctx, booking.ID)
}

// List returns the actor's bookings, or every booking for an admin. The
// ownership filter lives in the repository query, not in post-filtering.
func (s *BookingService) List(ctx context.Context, actor *Principal) ([]*models.Booking, error) {
	s.purgeExpired(ctx)

	if actor.IsAdmin() {
		return s.bookingRepo.ListAll(ctx)
	}
	return s.bookingRepo.ListByUser(ctx, actor.UserID)
}

// ListForHotel returns every booking at one hotel (admin view)
func (s *BookingService) ListForHotel(ctx context.Context, hotelID uint) ([]*models.Booking, error) {
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, err
	}
	return s.bookingRepo.ListByHotel(ctx, hotelID)
}

// SweepExpired removes bookings whose check-out has passed. Best effort: a
// failed sweep is logged and the stale rows are picked up on the next run.
func (s *BookingService) SweepExpired(ctx context.Context) {
	removed, err := s.bookingRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		log.Printf("❌ Booking sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("🧹 Swept %d expired booking(s)", removed)
	}
}

// purgeExpired runs an opportunistic sweep before a read so listings never show
// a stale booking even between scheduled sweeps.
func (s *BookingService) purgeExpired(ctx context.Context) {
	s.SweepExpired(ctx)
}

// getOwned fetches a booking and enforces the owner-or-admin gate
func (s *BookingService) getOwned(ctx context.Context, id uint, actor *Principal) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	if !actor.IsAdmin() && booking.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}
