// Package service — AuthService validates access tokens issued by the
// hosted auth service and, in dev mode, signs tokens locally.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var authTracer = otel.Tracer("service/auth")

// AuthService handles token validation and the dev login flow.
type AuthService struct {
	jwtSecret       []byte
	accessTTL       time.Duration
	devAuth         bool
	devPasswordHash string
	logger          *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(jwtSecret string, accessTTL time.Duration, devAuth bool, devPasswordHash string, logger *zap.Logger) *AuthService {
	return &AuthService{
		jwtSecret:       []byte(jwtSecret),
		accessTTL:       accessTTL,
		devAuth:         devAuth,
		devPasswordHash: devPasswordHash,
		logger:          logger,
	}
}

// JWTClaims represents the custom claims in access tokens. The hosted
// auth service puts the user id in sub and the email in email.
type JWTClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// ValidateAccessToken parses and verifies an HS256 access token and
// returns the identity it asserts.
func (s *AuthService) ValidateAccessToken(tokenString string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid or expired token"}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "invalid token"}
	}

	if claims.Type != "access" {
		return nil, &domain.ErrUnauthorized{Message: "invalid token type"}
	}

	return &domain.Identity{
		UserID:      claims.Sub,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}

// DevLogin signs a short-lived access token for local development.
// Disabled unless DEV_AUTH=true; the shared dev password is checked
// against a bcrypt hash from the environment.
func (s *AuthService) DevLogin(ctx context.Context, req *domain.DevLoginRequest) (*domain.DevLoginResponse, error) {
	_, span := authTracer.Start(ctx, "AuthService.DevLogin")
	defer span.End()

	if !s.devAuth {
		return nil, &domain.ErrForbidden{Action: "dev login is disabled"}
	}
	if req.Email == "" {
		return nil, &domain.ErrValidation{Field: "email", Message: "email is required"}
	}

	if s.devPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.devPasswordHash), []byte(req.Password)); err != nil {
			s.logger.Warn("dev login: wrong password", zap.String("email", req.Email))
			return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
		}
	}

	token, err := s.signAccessToken("dev-"+req.Email, req.Email, req.Name)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	s.logger.Info("dev login", zap.String("email", req.Email))

	return &domain.DevLoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.accessTTL.Seconds()),
	}, nil
}

func (s *AuthService) signAccessToken(userID, email, name string) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Sub:   userID,
		Email: email,
		Name:  name,
		Type:  "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			Issuer:    "tracker-bfa",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
