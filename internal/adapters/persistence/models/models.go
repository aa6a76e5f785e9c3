package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents the users table. Every account is reachable by at least one
// auth path: a password hash, a Google id, or both. Password and reset-token
// hashes are never serialized to clients.
type User struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Name                string         `gorm:"size:100;not null" json:"name"`
	Email               string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Tel                 string         `gorm:"size:20" json:"tel"`
	Password            string         `gorm:"size:255" json:"-"`
	Role                string         `gorm:"size:20;default:'user'" json:"role"`
	GoogleID            string         `gorm:"size:64;index" json:"-"`
	ResetPasswordToken  string         `gorm:"size:64;index" json:"-"`
	ResetPasswordExpire *time.Time     `json:"-"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Tel       string    `json:"tel"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Tel:       u.Tel,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ============================================================
// Hotel & Booking Tables
// ============================================================

// Hotel represents the hotels table
type Hotel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Address   string    `gorm:"size:255;not null" json:"address"`
	Tel       string    `gorm:"size:20;not null" json:"tel"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Hotel) TableName() string {
	return "hotels"
}

// Booking represents the bookings table. UserID and HotelID are plain foreign
// keys; the "hotel's bookings" view is a query by hotel id, not a stored
// back-edge.
type Booking struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CheckInDate  time.Time `gorm:"not null;index" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"not null;index" json:"check_out_date"`
	NumOfNights  int       `gorm:"not null" json:"num_of_nights"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	HotelID      uint      `gorm:"index;not null" json:"hotel_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
	Hotel        Hotel     `gorm:"foreignKey:HotelID" json:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingResponse DTO with the hotel and owner summaries clients render
type BookingResponse struct {
	ID           uint          `json:"id"`
	CheckInDate  time.Time     `json:"check_in_date"`
	CheckOutDate time.Time     `json:"check_out_date"`
	NumOfNights  int           `json:"num_of_nights"`
	CreatedAt    time.Time     `json:"created_at"`
	Hotel        *HotelSummary `json:"hotel,omitempty"`
	User         *OwnerSummary `json:"user,omitempty"`
}

// HotelSummary is the hotel slice exposed on a booking
type HotelSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Tel     string `json:"tel"`
}

// OwnerSummary is the owner slice exposed on a booking
type OwnerSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (b *Booking) ToResponse() *BookingResponse {
	resp := &BookingResponse{
		ID:           b.ID,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		NumOfNights:  b.NumOfNights,
		CreatedAt:    b.CreatedAt,
	}
	if b.Hotel.ID != 0 {
		resp.Hotel = &HotelSummary{
			ID:      b.Hotel.ID,
			Name:    b.Hotel.Name,
			Address: b.Hotel.Address,
			Tel:     b.Hotel.Tel,
		}
	}
	if b.User.ID != 0 {
		resp.User = &OwnerSummary{
			ID:    b.User.ID,
			Name:  b.User.Name,
			Email: b.User.Email,
		}
	}
	return resp
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Hotel{},
		&Booking{},
	)
}
