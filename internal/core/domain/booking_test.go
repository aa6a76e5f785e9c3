package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeNights(t *testing.T) {
	checkIn := date(2026, 5, 10)

	assert.Equal(t, 1, ComputeNights(checkIn, checkIn.Add(24*time.Hour)))
	assert.Equal(t, 2, ComputeNights(checkIn, checkIn.Add(48*time.Hour)))
	assert.Equal(t, 3, ComputeNights(checkIn, checkIn.Add(72*time.Hour)))

	// DST-skewed day lengths still round to whole nights
	assert.Equal(t, 1, ComputeNights(checkIn, checkIn.Add(23*time.Hour)))
	assert.Equal(t, 1, ComputeNights(checkIn, checkIn.Add(25*time.Hour)))
	assert.Equal(t, 2, ComputeNights(checkIn, checkIn.Add(47*time.Hour)))
}

func TestMidnight(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 42, 7, 123, time.UTC)
	assert.Equal(t, date(2026, 5, 10), Midnight(now))
	assert.Equal(t, date(2026, 5, 10), Midnight(date(2026, 5, 10)))
}

func TestValidateStay(t *testing.T) {
	// mid-afternoon "today", so today's midnight is already in the past
	today := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantErr  string
	}{
		{
			name:     "one night starting today",
			checkIn:  date(2026, 5, 10),
			checkOut: date(2026, 5, 11),
		},
		{
			name:     "three nights",
			checkIn:  date(2026, 5, 12),
			checkOut: date(2026, 5, 15),
		},
		{
			name:     "check-in yesterday",
			checkIn:  date(2026, 5, 9),
			checkOut: date(2026, 5, 11),
			wantErr:  "you can only book for now or future",
		},
		{
			name:     "check-out equals check-in",
			checkIn:  date(2026, 5, 12),
			checkOut: date(2026, 5, 12),
			wantErr:  "check-out date must be after check-in date",
		},
		{
			name:     "check-out before check-in",
			checkIn:  date(2026, 5, 14),
			checkOut: date(2026, 5, 12),
			wantErr:  "check-out date must be after check-in date",
		},
		{
			name:     "four nights",
			checkIn:  date(2026, 5, 12),
			checkOut: date(2026, 5, 16),
			wantErr:  "you can only book up to 3 nights",
		},
		{
			name:     "sub-night stay rounds to zero",
			checkIn:  date(2026, 5, 12),
			checkOut: date(2026, 5, 12).Add(4 * time.Hour),
			wantErr:  "minimum booking is 1 night",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStay(tt.checkIn, tt.checkOut, today)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
				assert.True(t, IsValidation(err))
			}
		})
	}
}

func TestValidateStayRuleOrder(t *testing.T) {
	today := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)

	// A stay that breaks both the past rule and the length rule reports the
	// past rule; rules run in order and the first failure wins.
	err := ValidateStay(date(2026, 5, 1), date(2026, 5, 9), today)
	assert.EqualError(t, err, "you can only book for now or future")
}
