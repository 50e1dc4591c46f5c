package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/repository"
	"github.com/Ibtida01/Shobarkhamar/utils"
)

// UserService owns registration, login and profile management. Refresh tokens
// are tracked in Redis so logout can revoke them before they expire.
type UserService struct {
	userRepo    repository.IUserRepository
	sessionRepo repository.SessionRepository
	jwtService  *JWTService
}

func NewUserService(userRepo repository.IUserRepository, sessionRepo repository.SessionRepository, jwtService *JWTService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
	}
}

// Register creates a farmer account and logs it straight in, returning the
// same token pair Login would.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	if err := utils.ValidateEmail(req.Email); err != nil {
		return nil, fmt.Errorf("%s: %w", err, models.ErrValidation)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%s: %w", err, models.ErrValidation)
	}

	hash, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleFarmer,
		Phone:        req.Phone,
		Address:      req.Address,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("incorrect email or password: %w", models.ErrUnauthorized)
		}
		return nil, err
	}

	if !repository.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("incorrect email or password: %w", models.ErrUnauthorized)
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a valid, unrevoked refresh token for a new token pair.
// The old session is revoked so each refresh token is single use.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	claims, err := s.jwtService.VerifyToken(refreshToken)
	if err != nil {
		return nil, err
	}

	sessionID := hashToken(refreshToken)
	if _, err := s.sessionRepo.GetSession(ctx, sessionID); err != nil {
		return nil, models.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, models.ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidToken
		}
		return nil, err
	}

	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		slog.Warn("failed to revoke refresh session", "user_id", userID, "error", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the session behind the given refresh token. A token that is
// already revoked or expired is not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessionRepo.DeleteSession(ctx, hashToken(refreshToken))
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetUserByID(id)
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	if err := s.userRepo.UpdateUser(id, req); err != nil {
		return nil, err
	}
	return s.userRepo.GetUserByID(id)
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
// Called once at startup when ADMIN_EMAIL and ADMIN_PASSWORD are set.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.userRepo.GetUserByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hash, err := repository.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.CreateUser(admin); err != nil {
		return err
	}

	slog.Info("admin account created", "email", email)
	return nil
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:               hashToken(refreshToken),
		UserID:           user.ID.String(),
		RefreshTokenHash: hashToken(refreshToken),
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         user,
	}, nil
}

// hashToken derives the session key from a refresh token. The raw token never
// hits Redis.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
