package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lending-backend/internal/domain/errs"
	"lending-backend/internal/domain/user"
	"lending-backend/internal/infrastructure/session"
	"lending-backend/pkg/id"
)

var ErrMissingFields = errs.Validation("missing fields")

// Tokens is the slice of session.Manager the usecase depends on.
type Tokens interface {
	Issue(userID string, role user.Role) (string, time.Time, error)
	Verify(ctx context.Context, token string) (*session.Claims, error)
	Revoke(ctx context.Context, token string) error
}

type Usecase struct {
	users      user.Repository
	tokens     Tokens
	bcryptCost int
	now        func() time.Time
}

func NewUsecase(users user.Repository, tokens Tokens, bcryptCost int) *Usecase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Usecase{users: users, tokens: tokens, bcryptCost: bcryptCost, now: time.Now}
}

// Register always creates a customer; admins come from the seed command.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := user.NormalizeEmail(in.Email)
	first := strings.TrimSpace(in.FirstName)
	if first == "" || email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	switch _, err := u.users.GetByEmail(ctx, email); {
	case err == nil:
		return nil, user.ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return nil, err
	}
	nu := &user.User{
		ID:           id.NewID32(),
		FirstName:    first,
		LastName:     optional(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        optional(in.Phone),
		Role:         user.RoleCustomer,
	}
	if err := u.users.Create(ctx, nu); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, user.ErrEmailTaken
		}
		return nil, err
	}
	return u.issue(nu)
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := user.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	found, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(in.Password)) != nil {
		return nil, user.ErrInvalidCredentials
	}

	if err := u.users.TouchLastLogin(ctx, found.ID, u.now()); err != nil {
		log.WithError(err).WithField("user_id", found.ID).Warn("auth: failed to update last_login_at")
	}
	return u.issue(found)
}

// Logout revokes token when possible. Failures are logged; the caller still
// clears the cookie.
func (u *Usecase) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := u.tokens.Revoke(ctx, token); err != nil {
		log.WithError(err).Warn("auth: failed to revoke session")
	}
}

// Authenticate resolves a session token to the identity of a live user.
func (u *Usecase) Authenticate(ctx context.Context, token string) (user.Identity, error) {
	claims, err := u.tokens.Verify(ctx, token)
	if err != nil {
		return user.Identity{}, err
	}
	found, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.Identity{}, errs.Wrap(errs.ErrUnauthenticated, "user not found")
		}
		return user.Identity{}, err
	}
	return found.Identity(), nil
}

func (u *Usecase) issue(usr *user.User) (*Session, error) {
	token, exp, err := u.tokens.Issue(usr.ID, usr.Role)
	if err != nil {
		return nil, err
	}
	return &Session{User: toDTO(usr), Token: token, ExpiresAt: exp}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
