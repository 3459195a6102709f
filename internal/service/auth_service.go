package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"carrental/internal/middleware"
	"carrental/internal/model"
	"carrental/internal/navigation"
	"carrental/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenPair is the login/refresh result. The refresh token travels only via
// HttpOnly cookie; the access token is also returned in the body as
// access_token, the shape the dashboard stores in its session.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"-"`
	User         *UserResponse `json:"user"`
}

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// AuthService owns the session lifecycle: the only mutations are a login
// (set) and a logout (clear), both idempotent from the caller's perspective.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Logout revokes the user's refresh tokens. Callers must invoke it
	// before clearing cookies or redirecting, so the server-side clear
	// happens even if the navigation step fails.
	Logout(ctx context.Context, refreshToken string) error
	GetMe(ctx context.Context, userID string) (*UserResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens repository.RefreshTokenRepository
}

// NewAuthService returns a new instance of AuthService
func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.tokens.GetValid(ctx, refreshToken)
	if err != nil {
		return nil, errors.New("invalid or expired refresh token")
	}

	user, err := s.users.GetByID(ctx, stored.UserID.String())
	if err != nil {
		return nil, errors.New("user not found")
	}

	// Rotate: the presented token is spent either way.
	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	stored, err := s.tokens.GetValid(ctx, refreshToken)
	if err != nil {
		// Already revoked or expired; logout is idempotent.
		return nil
	}
	return s.tokens.DeleteForUser(ctx, stored.UserID)
}

func (s *authService) GetMe(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapUserToResponse(user), nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": navigation.EffectiveRole(user),
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
	})

	accessToken, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	refresh, err := randomToken()
	if err != nil {
		return nil, errors.New("failed to generate refresh token")
	}
	if err := s.tokens.Create(ctx, &model.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refresh,
		User:         mapUserToResponse(user),
	}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
