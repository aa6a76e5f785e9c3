package repositories

import (
	"context"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// hotelRepository implements HotelRepository interface
type hotelRepository struct {
	db *gorm.DB
}

// NewHotelRepository creates a new hotel repository
func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &hotelRepository{db: db}
}

// Create creates a new hotel
func (r *hotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

// GetByID gets a hotel by ID
func (r *hotelRepository) GetByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hotel).Error
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

// List lists hotels with pagination
func (r *hotelRepository) List(ctx context.Context, offset, limit int) ([]*models.Hotel, int64, error) {
	var hotels []*models.Hotel
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Hotel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("name").Find(&hotels).Error; err != nil {
		return nil, 0, err
	}

	return hotels, total, nil
}

// Update updates a hotel
func (r *hotelRepository) Update(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Save(hotel).Error
}

// Delete deletes a hotel
func (r *hotelRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Hotel{}, id).Error
}
