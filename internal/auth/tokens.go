package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/LaundryServices01/laundry-admin/internal/models"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token revoked")
)

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenService issues and validates the HMAC-signed access/refresh pair.
type TokenService struct {
	secret     []byte
	store      TokenStore
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, store TokenStore, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		store:      store,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) IssuePair(user *models.User) (TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        user.ID,
		"role":       user.Role,
		"token_type": TypeAccess,
		"iat":        now.Unix(),
		"exp":        now.Add(s.accessTTL).Unix(),
	})
	accessStr, err := access.SignedString(s.secret)
	if err != nil {
		return TokenPair{}, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        user.ID,
		"role":       user.Role,
		"token_type": TypeRefresh,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(s.refreshTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString(s.secret)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: accessStr, Refresh: refreshStr}, nil
}

// Refresh trades a valid, non-revoked refresh token for a new access token.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken, TypeRefresh)
	if err != nil {
		return "", err
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return "", ErrInvalidToken
	}

	revoked, err := s.store.IsRevoked(ctx, jti)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrRevokedToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return "", ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	now := time.Now()
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        uint(sub),
		"role":       role,
		"token_type": TypeAccess,
		"iat":        now.Unix(),
		"exp":        now.Add(s.accessTTL).Unix(),
	})
	return access.SignedString(s.secret)
}

// RevokeRefresh blacklists the token's jti for the remainder of its life.
func (s *TokenService) RevokeRefresh(ctx context.Context, refreshToken string) error {
	claims, err := s.parse(refreshToken, TypeRefresh)
	if err != nil {
		return err
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return ErrInvalidToken
	}

	ttl := s.refreshTTL
	if exp, ok := claims["exp"].(float64); ok {
		ttl = time.Until(time.Unix(int64(exp), 0))
	}

	return s.store.Revoke(ctx, jti, ttl)
}

func (s *TokenService) parse(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
