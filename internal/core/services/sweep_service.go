package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// sweepSchedule is how often expired bookings are purged
const sweepSchedule = "@every 10m"

// SweepService runs the scheduled expired-booking purge
type SweepService struct {
	bookings *BookingService
	cron     *cron.Cron
}

// NewSweepService creates a new sweep service
func NewSweepService(bookings *BookingService) *SweepService {
	return &SweepService{
		bookings: bookings,
		cron:     cron.New(),
	}
}

// Start schedules the purge and runs one pass immediately so a restart does not
// leave stale rows sitting until the first tick.
func (s *SweepService) Start() error {
	if _, err := s.cron.AddFunc(sweepSchedule, func() {
		s.bookings.SweepExpired(context.Background())
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.bookings.SweepExpired(context.Background())

	log.Printf("🚀 Booking sweep scheduled (%s)", sweepSchedule)
	return nil
}

// Stop stops the scheduler
func (s *SweepService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Booking sweep stopped")
}
