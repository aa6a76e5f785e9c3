package routes

import (
	"time"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/http/handlers"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/http/middleware"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/repositories"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/config"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the services
// that need lifecycle management.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.SweepService {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	hotelRepo := repositories.NewHotelRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)

	// Services
	mailer := services.NewSMTPMailer(cfg.SMTP)
	authService := services.NewAuthService(userRepo, mailer, cfg)
	oauthService := services.NewOAuthService(userRepo, services.NewGoogleProvider(cfg.Google))
	bookingService := services.NewBookingService(bookingRepo, hotelRepo)
	sweepService := services.NewSweepService(bookingService)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	oauthHandler := handlers.NewOAuthHandler(oauthService, authService, cfg)
	hotelHandler := handlers.NewHotelHandler(hotelRepo)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group. Every state-changing request inside it must pass the
	// double-submit check.
	apiV1 := app.Group("/api/v1")
	apiV1.Use(middleware.CsrfGuard(cfg))

	authRoutes := apiV1.Group("/auth", middleware.NoCacheHeaders())
	setupAuthRoutes(authRoutes, authHandler, oauthHandler, authService)

	hotelRoutes := apiV1.Group("/hotels")
	setupHotelRoutes(hotelRoutes, hotelHandler, bookingHandler, authService)

	bookingRoutes := apiV1.Group("/bookings")
	bookingRoutes.Use(middleware.Protect(authService))
	setupBookingRoutes(bookingRoutes, bookingHandler)

	return sweepService
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(
	router fiber.Router,
	handler *handlers.AuthHandler,
	oauthHandler *handlers.OAuthHandler,
	authService *services.AuthService,
) {
	// Public routes. Login and register take the stricter limiter; password
	// reset takes the strictest.
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/forgotpassword", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Put("/resetpassword/:token", middleware.StrictRateLimiter(), handler.ResetPassword)
	router.Get("/csrf-token", handler.GetCsrfToken)

	// Logout only overwrites the cookie, so it works even with an expired
	// session
	router.Get("/logout", handler.Logout)

	// Google OAuth flow
	router.Get("/google", oauthHandler.GoogleLogin)
	router.Get("/google/callback", oauthHandler.GoogleCallback)
	router.Get("/google/failure", oauthHandler.GoogleFailure)

	// Protected routes
	router.Get("/me", middleware.Protect(authService), handler.Me)
	router.Put("/update", middleware.Protect(authService), handler.UpdateMe)
}

// setupHotelRoutes configures hotel catalog routes. Reads are public, writes
// are admin only, and a nested route books a stay at one hotel.
func setupHotelRoutes(
	router fiber.Router,
	handler *handlers.HotelHandler,
	bookingHandler *handlers.BookingHandler,
	authService *services.AuthService,
) {
	router.Get("/", middleware.CacheControl(5*time.Minute), handler.List)
	router.Get("/:id", middleware.CacheControl(5*time.Minute), handler.Get)

	router.Post("/", middleware.Protect(authService), middleware.AdminOnly(), handler.Create)
	router.Put("/:id", middleware.Protect(authService), middleware.AdminOnly(), handler.Update)
	router.Delete("/:id", middleware.Protect(authService), middleware.AdminOnly(), handler.Delete)

	// Bookings nested under a hotel
	router.Post("/:hotelId/bookings", middleware.Protect(authService), bookingHandler.Create)
	router.Get("/:hotelId/bookings", middleware.Protect(authService), middleware.AdminOnly(), bookingHandler.ListForHotel)
}

// setupBookingRoutes configures booking lifecycle routes (authenticated)
func setupBookingRoutes(router fiber.Router, handler *handlers.BookingHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}
