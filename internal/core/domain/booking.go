package domain

import (
	"math"
	"time"
)

// Stay limits
const (
	MinNights = 1
	MaxNights = 3
)

// ComputeNights returns the whole-day difference between check-in and check-out,
// rounded to the nearest day so DST-skewed 23h/25h intervals still count as full
// nights.
func ComputeNights(checkIn, checkOut time.Time) int {
	return int(math.Round(checkOut.Sub(checkIn).Hours() / 24))
}

// Midnight truncates t to midnight in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateStay checks a proposed stay against the booking rules. Rules run in
// order, first failure wins:
//  1. check-in must not be before today's midnight
//  2. check-out must be strictly after check-in
//  3. night count must be between MinNights and MaxNights inclusive
//
// The same function runs at creation and at update time, against the effective
// post-update dates.
func ValidateStay(checkIn, checkOut, today time.Time) error {
	if checkIn.Before(Midnight(today)) {
		return Validation("you can only book for now or future")
	}
	if !checkOut.After(checkIn) {
		return Validation("check-out date must be after check-in date")
	}
	nights := ComputeNights(checkIn, checkOut)
	if nights < MinNights {
		return Validation("minimum booking is %d night", MinNights)
	}
	if nights > MaxNights {
		return Validation("you can only book up to %d nights", MaxNights)
	}
	return nil
}
