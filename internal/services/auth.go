package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/garage-backend/internal/data/repos"
	"github.com/yungbote/garage-backend/internal/platform/ctxutil"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type AuthService interface {
	// SetContextFromToken verifies an HS256 bearer token and attaches the caller's
	// RequestData (user id, plan, subscription status) to ctx.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	// IssueToken mints an access token for userID; used by operator tooling and tests.
	IssueToken(userID uuid.UUID) (string, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
}

type authService struct {
	log       *logger.Logger
	users     repos.UserRepo
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewAuthService(log *logger.Logger, users repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &authService{
		log:       log.With("service", "AuthService"),
		users:     users,
		secret:    []byte(jwtSecretKey),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

func (as *authService) IssueToken(userID uuid.UUID) (string, error) {
	if len(as.secret) == 0 {
		return "", fmt.Errorf("missing JWT_SECRET_KEY")
	}
	now := as.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.secret)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" || len(as.secret) == 0 {
		return ctx, ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return as.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	user, err := as.users.GetByID(ctx, nil, userID)
	if err != nil {
		as.log.Warn("Error loading user for token", "user_id", userID, "error", err)
		return ctx, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return ctx, fmt.Errorf("%w: unknown user", ErrInvalidToken)
	}

	rd := &ctxutil.RequestData{
		TokenString:        tokenString,
		UserID:             user.ID,
		Plan:               user.Plan,
		SubscriptionStatus: user.SubscriptionStatus,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}
