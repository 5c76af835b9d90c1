package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finance-tracker/internal/dto"
	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
)

// revocationFallback bounds a blacklist entry whose token expiry cannot be read
const revocationFallback = 24 * time.Hour

type authService struct {
	userRepo             repositories.UserRepositoryInterface
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface
	passwordService      PasswordServiceInterface
	tokenService         TokenServiceInterface
	userService          UserServiceInterface
	metrics              MetricsRecorderInterface
	activity             ActivityLoggerInterface
	logger               *slog.Logger
}

// NewAuthService wires registration, login and logout over the user store and the token blacklist
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	userService UserServiceInterface,
	metrics MetricsRecorderInterface,
	activity ActivityLoggerInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &authService{
		userRepo:             userRepo,
		blacklistedTokenRepo: blacklistedTokenRepo,
		passwordService:      passwordService,
		tokenService:         tokenService,
		userService:          userService,
		metrics:              metrics,
		activity:             activity,
		logger:               logger,
	}
}

// Register creates a new user and seeds their default categories and account
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, apperrors.New(apperrors.ValidationInvalidEmail)
	}

	if err := s.passwordService.ValidatePassword(req.Password); err != nil {
		if errors.Is(err, ErrPasswordTooShort) || errors.Is(err, ErrPasswordEmpty) {
			return nil, apperrors.New(apperrors.ValidationPasswordTooShort)
		}
		return nil, apperrors.New(apperrors.ValidationGeneral, apperrors.WithMessage(err.Error()))
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		s.recordAuthEvent(ctx, "register_failed", uuid.Nil, email)
		return nil, apperrors.New(apperrors.AuthEmailTaken)
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.New(apperrors.AuthEmailTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := s.userService.InitializeDefaults(ctx, user.ID); err != nil {
		// The user can re-run initialization from the settings endpoint
		s.logger.ErrorContext(ctx, "failed to initialize user defaults",
			"error", err,
			"user_id", user.ID)
	}

	s.recordAuthEvent(ctx, "register", user.ID, user.Email)
	return user, nil
}

// Login authenticates a user and issues a session token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.recordAuthEvent(ctx, "login_failed", uuid.Nil, email)
			return nil, apperrors.New(apperrors.AuthInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.recordAuthEvent(ctx, "login_failed", user.ID, email)
		return nil, apperrors.New(apperrors.AuthInvalidCredentials)
	}

	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.recordAuthEvent(ctx, "login", user.ID, user.Email)

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        toUserResponse(user),
	}, nil
}

// Logout revokes the session token until it expires
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		// an unverifiable token is revoked too, logout never fails for the caller
		if jti, _ := s.tokenService.GetJTI(accessToken); jti != "" {
			if err := s.blacklistToken(ctx, jti, uuid.Nil, time.Now().Add(revocationFallback)); err != nil {
				s.logger.ErrorContext(ctx, "failed to blacklist unverifiable token", "error", err, "jti", jti)
			}
		}
		return nil
	}

	userID, _ := uuid.Parse(claims.UserID)

	expiry, err := s.tokenService.GetTokenExpiry(accessToken)
	if err != nil {
		expiry = time.Now().Add(revocationFallback)
	}
	if err := s.blacklistToken(ctx, claims.ID, userID, expiry); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	s.recordAuthEvent(ctx, "logout", userID, claims.Email)
	return nil
}

func (s *authService) blacklistToken(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) error {
	return s.blacklistedTokenRepo.Create(ctx, &models.BlacklistedToken{JTI: jti, UserID: userID, ExpiresAt: expiresAt})
}

func (s *authService) recordAuthEvent(ctx context.Context, event string, userID uuid.UUID, email string) {
	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": event})
	s.activity.LogAuthEvent(ctx, event, userID, email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Currency:  user.CurrencyOrDefault(),
		CreatedAt: user.CreatedAt,
	}
}
