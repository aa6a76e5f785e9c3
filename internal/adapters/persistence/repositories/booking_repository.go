package repositories

import (
	"context"
	"time"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookingRepository implements BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID gets a booking by ID with its hotel and owner preloaded
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("User").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update updates a booking
func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// Delete deletes a booking
func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

// ListAll lists every booking (admin view)
func (r *bookingRepository) ListAll(ctx context.Context) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("User").
		Order("check_in_date").
		Find(&bookings).Error
	return bookings, err
}

// ListByUser lists bookings owned by userID. The filter lives in the query so
// non-admin callers never observe the existence of other users' bookings.
func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("User").
		Where("user_id = ?", userID).
		Order("check_in_date").
		Find(&bookings).Error
	return bookings, err
}

// ListByHotel lists bookings for one hotel
func (r *bookingRepository) ListByHotel(ctx context.Context, hotelID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("User").
		Where("hotel_id = ?", hotelID).
		Order("check_in_date").
		Find(&bookings).Error
	return bookings, err
}

// DeleteExpired removes bookings whose check-out is strictly before now.
// Returns the number of rows removed.
func (r *bookingRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("check_out_date < ?", now).
		Delete(&models.Booking{})
	return result.RowsAffected, result.Error
}
