// Package session issues and verifies the signed tokens carried in the
// session cookie. Revoked token ids are kept in Redis until the token would
// have expired anyway.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"lending-backend/internal/domain/errs"
	"lending-backend/internal/domain/user"
)

var (
	ErrInvalidToken = errs.Wrap(errs.ErrUnauthenticated, "invalid or expired session")
	ErrRevoked      = errs.Wrap(errs.ErrUnauthenticated, "session has been logged out")
)

const revokedPrefix = "session:revoked:"

type Claims struct {
	UserID string    `json:"userId"`
	Role   user.Role `json:"role"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	rdb    *redis.Client
	now    func() time.Time
}

// NewManager signs with HS256. rdb may be nil, in which case Revoke is a
// no-op and tokens stay valid until they expire.
func NewManager(secret string, ttl time.Duration, rdb *redis.Client) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, rdb: rdb, now: time.Now}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue returns a signed token for userID and the instant it expires.
func (m *Manager) Issue(userID string, role user.Role) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, expiry and the revocation list.
func (m *Manager) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, err
	}
	if m.rdb != nil && claims.ID != "" {
		n, err := m.rdb.Exists(ctx, revokedPrefix+claims.ID).Result()
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if n > 0 {
			return nil, ErrRevoked
		}
	}
	return claims, nil
}

// Revoke denies token for the remainder of its lifetime. Tokens that are
// already invalid are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if m.rdb == nil {
		return nil
	}
	claims, err := m.parse(token)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.rdb.Set(ctx, revokedPrefix+claims.ID, claims.UserID, ttl).Err()
}

func (m *Manager) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
