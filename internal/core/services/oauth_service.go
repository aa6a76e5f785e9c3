package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/repositories"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/config"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/domain"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/password"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// ProviderProfile is the normalized identity claim returned by the external
// provider after a successful code exchange.
type ProviderProfile struct {
	ID            string
	Email         string
	EmailVerified bool
	DisplayName   string
}

// Provider abstracts the external OAuth provider so account linking can be
// tested without network calls.
type Provider interface {
	AuthCodeURL(state string) string
	ExchangeProfile(ctx context.Context, code string) (*ProviderProfile, error)
}

// GoogleProvider implements Provider against Google's OAuth2 endpoints
type GoogleProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
}

// NewGoogleProvider creates a Google OAuth provider from config
func NewGoogleProvider(cfg config.GoogleConfig) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		userInfoURL: cfg.UserInfoURL,
	}
}

// AuthCodeURL builds the provider consent URL carrying the state nonce
func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeProfile trades the callback code for tokens and fetches the user's
// profile from the userinfo endpoint.
func (g *GoogleProvider) ExchangeProfile(ctx context.Context, code string) (*ProviderProfile, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth code exchange: %w", err)
	}

	resp, err := g.oauth.Client(ctx, tok).Get(g.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("oauth userinfo fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth userinfo fetch: status %d", resp.StatusCode)
	}

	var info struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("oauth userinfo decode: %w", err)
	}

	return &ProviderProfile{
		ID:            info.ID,
		Email:         info.Email,
		EmailVerified: info.VerifiedEmail,
		DisplayName:   info.Name,
	}, nil
}

// OAuthService links external provider identities to local accounts
type OAuthService struct {
	userRepo repositories.UserRepository
	provider Provider
}

// NewOAuthService creates a new OAuth service
func NewOAuthService(userRepo repositories.UserRepository, provider Provider) *OAuthService {
	return &OAuthService{
		userRepo: userRepo,
		provider: provider,
	}
}

// LoginURL builds the provider consent URL for the given state nonce
func (s *OAuthService) LoginURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

// HandleCallback exchanges the callback code and resolves it to a local account
func (s *OAuthService) HandleCallback(ctx context.Context, code string) (*models.User, error) {
	profile, err := s.provider.ExchangeProfile(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.LinkOrCreate(ctx, profile)
}

// LinkOrCreate resolves a provider profile to a local account:
//  1. an unverified provider email is rejected outright
//  2. an account already linked to this provider id logs straight in
//  3. an existing account with the same email gets the provider id backfilled,
//     keeping its password so local login still works
//  4. otherwise a new account is created with a random password no one knows
func (s *OAuthService) LinkOrCreate(ctx context.Context, profile *ProviderProfile) (*models.User, error) {
	// An empty subject id must never reach the provider-id lookup: local-only
	// accounts store an empty google_id, so "" would match one of them.
	if profile.ID == "" || profile.Email == "" {
		return nil, domain.ErrProviderProfileInvalid
	}
	if !profile.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	user, err := s.userRepo.GetByGoogleID(ctx, profile.ID)
	if err == nil {
		log.Printf("✅ Google login: %s", user.Email)
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email := NormalizeEmail(profile.Email)

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		user.GoogleID = profile.ID
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("✅ Google account linked: %s", user.Email)
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// First sign-in via Google. The account gets a random password so the
	// local-credential path stays unusable until the user resets it.
	randomSecret, err := password.GenerateToken(32)
	if err != nil {
		return nil, err
	}
	hashedPassword, err := password.Hash(randomSecret)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(profile.DisplayName)
	if name == "" {
		name = "Google User"
	}

	user = &models.User{
		Name:     name,
		Email:    email,
		Tel:      "0000000000", // provider profiles carry no phone
		Password: hashedPassword,
		Role:     domain.RoleUser,
		GoogleID: profile.ID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Google account created: %s", user.Email)
	return user, nil
}
