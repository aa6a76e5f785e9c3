package repositories

import (
	"context"
	"time"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"
)

// UserRepository defines user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// HotelRepository defines hotel data access
type HotelRepository interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	GetByID(ctx context.Context, id uint) (*models.Hotel, error)
	List(ctx context.Context, offset, limit int) ([]*models.Hotel, int64, error)
	Update(ctx context.Context, hotel *models.Hotel) error
	Delete(ctx context.Context, id uint) error
}

// BookingRepository defines booking data access
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]*models.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Booking, error)
	ListByHotel(ctx context.Context, hotelID uint) ([]*models.Booking, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
