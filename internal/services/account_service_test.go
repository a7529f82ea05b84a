package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trailhub/internal/config"
	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/memcache"
	"trailhub/pkg/utils"
)

type accountFixture struct {
	svc    AccountService
	store  *memcache.MemoryStore
	mail   *fakeMail
	issuer *utils.TokenIssuer
}

func newAccountFixture(t *testing.T) accountFixture {
	db := newTestDB(t)
	store := memcache.NewMemoryStore()
	mail := &fakeMail{}
	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	cfg := &config.Config{Admin: config.Admin{Emails: []string{"boss@example.com"}}}
	svc := NewAccountService(repositories.NewUserRepository(db), issuer, store, mail, cfg, zap.NewNop())
	return accountFixture{svc: svc, store: store, mail: mail, issuer: issuer}
}

func signUp(username, email, password string) request_models.SignUpRequest {
	return request_models.SignUpRequest{Username: username, Email: email, Password: password, ConfirmPassword: password}
}

func TestAccountRegister(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	u, err := f.svc.Register(ctx, signUp("alice", "Alice@Example.com", "secret1"))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "user", u.Role)

	admin, err := f.svc.Register(ctx, signUp("boss", "boss@example.com", "secret1"))
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)

	cases := []struct {
		name string
		req  request_models.SignUpRequest
		want error
	}{
		{"missing fields", request_models.SignUpRequest{Username: "x"}, utils.ErrMissingFields},
		{"mismatch", request_models.SignUpRequest{Username: "x", Email: "x@example.com", Password: "secret1", ConfirmPassword: "secret2"}, utils.ErrPasswordMismatch},
		{"weak", signUp("x", "x@example.com", "abc"), utils.ErrWeakPassword},
		{"username taken", signUp("alice", "new@example.com", "secret1"), utils.ErrUsernameTaken},
		{"email taken", signUp("other", "ALICE@example.com", "secret1"), utils.ErrEmailAlreadyExists},
		{"username too short", signUp("ab", "ab@example.com", "secret1"), utils.ErrInvalidUsername},
		{"username too long", signUp(strings.Repeat("u", 81), "long@example.com", "secret1"), utils.ErrInvalidUsername},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, c.req)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestAccountRegisterUsernameBounds(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, signUp("bob", "bob@example.com", "secret1"))
	assert.NoError(t, err)
	_, err = f.svc.Register(ctx, signUp(strings.Repeat("u", 80), "max@example.com", "secret1"))
	assert.NoError(t, err)
}

// racingUsers hides existing emails from the pre-insert check, as when a
// concurrent registration commits between the check and the insert.
type racingUsers struct {
	repositories.UserRepository
	emailLookups int
}

func (r *racingUsers) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	r.emailLookups++
	if r.emailLookups == 1 {
		return nil, nil
	}
	return r.UserRepository.FindByEmail(ctx, email)
}

func TestAccountRegisterConcurrentEmail(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "carol")
	users := &racingUsers{UserRepository: repositories.NewUserRepository(db)}
	svc := NewAccountService(users, utils.NewTokenIssuer("test-secret", time.Hour), memcache.NewMemoryStore(), &fakeMail{}, &config.Config{}, zap.NewNop())

	_, err := svc.Register(context.Background(), signUp("carol2", "carol@example.com", "secret1"))
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
	assert.Equal(t, 2, users.emailLookups)
}

func TestAccountLoginAndLogout(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, signUp("alice", "alice@example.com", "secret1"))
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, request_models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, request_models.LoginRequest{Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, request_models.LoginRequest{})
	assert.ErrorIs(t, err, utils.ErrMissingCredentials)

	out, err := f.svc.Login(ctx, request_models.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", out.User.Username)

	claims, err := f.issuer.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)

	require.NoError(t, f.svc.Logout(ctx, claims.ID, claims.ExpiresAt.Time))
	_, revoked, err := f.store.Peek(ctx, memcache.RevokedPrefix+claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAccountPasswordReset(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, signUp("alice", "alice@example.com", "secret1"))
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, "nobody@example.com"))
	assert.Empty(t, f.mail.sent)

	require.NoError(t, f.svc.ForgotPassword(ctx, "alice@example.com"))
	sent := f.mail.last()
	require.NotEmpty(t, sent.Token)
	assert.Equal(t, "alice@example.com", sent.To)

	err = f.svc.ResetPassword(ctx, request_models.ResetPasswordRequest{Token: sent.Token, NewPassword: "brand-new"})
	require.NoError(t, err)

	err = f.svc.ResetPassword(ctx, request_models.ResetPasswordRequest{Token: sent.Token, NewPassword: "again-new"})
	assert.ErrorIs(t, err, utils.ErrInvalidResetToken)

	_, err = f.svc.Login(ctx, request_models.LoginRequest{Username: "alice", Password: "secret1"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, request_models.LoginRequest{Username: "alice", Password: "brand-new"})
	assert.NoError(t, err)
}

func TestAccountPreferences(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	u, err := f.svc.Register(ctx, signUp("alice", "alice@example.com", "secret1"))
	require.NoError(t, err)
	id := mustParseUUID(t, u.ID)

	empty, err := f.svc.GetPreferences(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty.PreferredCategories)

	_, err = f.svc.UpdatePreferences(ctx, id, request_models.UpdatePreferenceRequest{DifficultyLevel: 9})
	assert.ErrorIs(t, err, utils.ErrInvalidDifficultyPref)

	_, err = f.svc.UpdatePreferences(ctx, id, request_models.UpdatePreferenceRequest{
		PreferredCategories: []string{"Hiking", " ", "Camping"},
		DifficultyLevel:     3,
		BudgetRange:         "medium",
	})
	require.NoError(t, err)

	got, err := f.svc.GetPreferences(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hiking", "Camping"}, got.PreferredCategories)
	assert.Equal(t, 3, got.DifficultyLevel)

	p, err := f.svc.UpdateProfile(ctx, id, request_models.UpdateProfileRequest{Bio: "  trail runner "})
	require.NoError(t, err)
	assert.Equal(t, "trail runner", p.Bio)
}
