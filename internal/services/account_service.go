package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trailhub/internal/config"
	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/memcache"
	"trailhub/pkg/utils"
)

const (
	resetTokenTTL     = 15 * time.Minute
	resetTokenBytes   = 32
	minPasswordLength = 6
	minUsernameLength = 3
	maxUsernameLength = 80
)

type AccountService interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (*resp.UserResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*resp.LoginResponse, error)
	// Logout revokes the token identified by jti until it would have expired.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req request_models.ResetPasswordRequest) error

	Profile(ctx context.Context, userID uuid.UUID) (*resp.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*resp.UserResponse, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (*resp.PreferenceResponse, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req request_models.UpdatePreferenceRequest) (*resp.PreferenceResponse, error)
}

type accountService struct {
	users  repositories.UserRepository
	issuer *utils.TokenIssuer
	tokens memcache.TokenStore
	mail   MailService
	cfg    *config.Config
	log    *zap.Logger
}

func NewAccountService(
	users repositories.UserRepository,
	issuer *utils.TokenIssuer,
	tokens memcache.TokenStore,
	mail MailService,
	cfg *config.Config,
	log *zap.Logger,
) AccountService {
	return &accountService{
		users:  users,
		issuer: issuer,
		tokens: tokens,
		mail:   mail,
		cfg:    cfg,
		log:    log,
	}
}

func toUserResponse(u *db_models.User) resp.UserResponse {
	return resp.UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

func (s *accountService) Register(ctx context.Context, req request_models.SignUpRequest) (*resp.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, utils.ErrMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return nil, utils.ErrPasswordMismatch
	}
	if len(req.Password) < minPasswordLength {
		return nil, utils.ErrWeakPassword
	}
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return nil, utils.ErrInvalidUsername
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("find user by username", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrUsernameTaken
	}

	existing, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("find user by email", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("hash password", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	role := "user"
	if s.cfg.IsAdminEmail(email) {
		role = "admin"
	}

	user := &db_models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateUserError(ctx, email)
		}
		s.log.Error("create user", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", role))
	out := toUserResponse(user)
	return &out, nil
}

// duplicateUserError tells which unique index a concurrent registration hit.
func (s *accountService) duplicateUserError(ctx context.Context, email string) error {
	taken, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("find user by email after conflict", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if taken != nil {
		return utils.ErrEmailAlreadyExists
	}
	return utils.ErrUsernameTaken
}

func (s *accountService) Login(ctx context.Context, req request_models.LoginRequest) (*resp.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, utils.ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("find user by username", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, exp, err := s.issuer.CreateToken(user.ID, user.Role)
	if err != nil {
		s.log.Error("create token", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return &resp.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      toUserResponse(user),
	}, nil
}

func (s *accountService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.tokens.Set(ctx, memcache.RevokedPrefix+jti, "1", ttl); err != nil {
		s.log.Error("revoke token", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

// ForgotPassword never reveals whether the address is registered.
func (s *accountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("find user by email", zap.Error(err))
		return nil
	}
	if user == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		s.log.Error("generate reset token", zap.Error(err))
		return nil
	}
	if err := s.tokens.Set(ctx, memcache.ResetPrefix+token, user.ID.String(), resetTokenTTL); err != nil {
		s.log.Error("store reset token", zap.Error(err))
		return nil
	}
	if err := s.mail.SendPasswordReset(ctx, user.Email, token); err != nil {
		s.log.Warn("send reset mail", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return nil
}

func (s *accountService) ResetPassword(ctx context.Context, req request_models.ResetPasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return utils.ErrWeakPassword
	}

	value, ok, err := s.tokens.Consume(ctx, memcache.ResetPrefix+strings.TrimSpace(req.Token))
	if err != nil {
		s.log.Error("consume reset token", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if !ok {
		return utils.ErrInvalidResetToken
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return utils.ErrInvalidResetToken
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("find user", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrInvalidResetToken
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("hash password", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		s.log.Error("update password", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *accountService) loadUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("find user", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

func (s *accountService) Profile(ctx context.Context, userID uuid.UUID) (*resp.UserResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*resp.UserResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	bio := strings.TrimSpace(req.Bio)
	if err := s.users.UpdateBio(ctx, userID, bio); err != nil {
		s.log.Error("update bio", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	user.Bio = bio
	out := toUserResponse(user)
	return &out, nil
}

func toPreferenceResponse(p *db_models.UserPreference) *resp.PreferenceResponse {
	out := &resp.PreferenceResponse{PreferredCategories: []string{}}
	if p == nil {
		return out
	}
	if cats := splitCategories(p.PreferredCategories); cats != nil {
		out.PreferredCategories = cats
	}
	out.DifficultyLevel = p.DifficultyLevel
	out.BudgetRange = p.BudgetRange
	out.LastUpdated = p.LastUpdated
	return out
}

func (s *accountService) GetPreferences(ctx context.Context, userID uuid.UUID) (*resp.PreferenceResponse, error) {
	pref, err := s.users.GetPreference(ctx, userID)
	if err != nil {
		s.log.Error("get preference", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return toPreferenceResponse(pref), nil
}

func (s *accountService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req request_models.UpdatePreferenceRequest) (*resp.PreferenceResponse, error) {
	if req.DifficultyLevel < 0 || req.DifficultyLevel > 5 {
		return nil, utils.ErrInvalidDifficultyPref
	}

	cats := make([]string, 0, len(req.PreferredCategories))
	for _, c := range req.PreferredCategories {
		if c = strings.TrimSpace(strings.ReplaceAll(c, ",", " ")); c != "" {
			cats = append(cats, c)
		}
	}

	pref := &db_models.UserPreference{
		UserID:              userID,
		PreferredCategories: strings.Join(cats, ","),
		DifficultyLevel:     req.DifficultyLevel,
		BudgetRange:         strings.TrimSpace(req.BudgetRange),
		LastUpdated:         utils.NowUnixSeconds(),
	}
	if err := s.users.UpsertPreference(ctx, pref); err != nil {
		s.log.Error("upsert preference", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return toPreferenceResponse(pref), nil
}
