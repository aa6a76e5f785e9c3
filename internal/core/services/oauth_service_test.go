package services

import (
	"context"
	"testing"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/domain"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeProvider returns a canned profile for any code
type fakeProvider struct {
	profile *ProviderProfile
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.test/auth?state=" + state
}

func (p *fakeProvider) ExchangeProfile(_ context.Context, _ string) (*ProviderProfile, error) {
	return p.profile, nil
}

func newTestOAuthService(profile *ProviderProfile) (*OAuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewOAuthService(repo, &fakeProvider{profile: profile}), repo
}

// sqlLikeUserRepo matches google_id the way the real WHERE clause does: an
// empty probe id equals the empty column value of every unlinked account.
type sqlLikeUserRepo struct {
	*fakeUserRepo
}

func (r *sqlLikeUserRepo) GetByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	for _, u := range r.users {
		if u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestLinkOrCreateRejectsEmptyProviderID(t *testing.T) {
	repo := &sqlLikeUserRepo{fakeUserRepo: newFakeUserRepo()}
	svc := NewOAuthService(repo, &fakeProvider{profile: &ProviderProfile{
		ID:            "",
		Email:         "victim@example.com",
		EmailVerified: true,
		DisplayName:   "Somebody",
	}})
	ctx := context.Background()

	// a local-only account whose google_id column is empty
	victim := &models.User{Name: "Victim", Email: "victim@example.com", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, victim))

	// an empty subject id must never resolve to that account
	user, err := svc.HandleCallback(ctx, "code")
	assert.ErrorIs(t, err, domain.ErrProviderProfileInvalid)
	assert.Nil(t, user)
	assert.Len(t, repo.users, 1)
	assert.Empty(t, repo.users[victim.ID].GoogleID)
}

func TestLinkOrCreateRejectsUnverifiedEmail(t *testing.T) {
	svc, repo := newTestOAuthService(&ProviderProfile{
		ID:            "google-1",
		Email:         "alice@example.com",
		EmailVerified: false,
		DisplayName:   "Alice",
	})

	_, err := svc.HandleCallback(context.Background(), "code")
	assert.ErrorIs(t, err, domain.ErrEmailNotVerified)
	assert.Empty(t, repo.users)
}

func TestLinkOrCreateExistingProviderID(t *testing.T) {
	svc, repo := newTestOAuthService(&ProviderProfile{
		ID:            "google-1",
		Email:         "alice@example.com",
		EmailVerified: true,
		DisplayName:   "Alice",
	})
	ctx := context.Background()

	existing := &models.User{Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser, GoogleID: "google-1"}
	require.NoError(t, repo.Create(ctx, existing))

	user, err := svc.HandleCallback(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Len(t, repo.users, 1)
}

func TestLinkOrCreateBackfillsProviderID(t *testing.T) {
	svc, repo := newTestOAuthService(&ProviderProfile{
		ID:            "google-1",
		Email:         "alice@example.com",
		EmailVerified: true,
		DisplayName:   "Alice",
	})
	ctx := context.Background()

	hash, err := password.Hash("localpassword")
	require.NoError(t, err)
	existing := &models.User{Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser, Password: hash}
	require.NoError(t, repo.Create(ctx, existing))

	user, err := svc.HandleCallback(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, "google-1", user.GoogleID)

	// the local password survives the link
	stored := repo.users[existing.ID]
	assert.True(t, password.Verify("localpassword", stored.Password))
}

func TestLinkOrCreateNewAccount(t *testing.T) {
	svc, _ := newTestOAuthService(&ProviderProfile{
		ID:            "google-2",
		Email:         "Bob@Example.com",
		EmailVerified: true,
		DisplayName:   "Bob",
	})

	user, err := svc.HandleCallback(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "google-2", user.GoogleID)
	assert.Equal(t, "0000000000", user.Tel)

	// a password exists but is unknowable, so it can never match a guess
	assert.NotEmpty(t, user.Password)
	assert.False(t, password.Verify("", user.Password))
}
