package user

import (
	"strings"
	"time"

	"lending-backend/internal/domain/errs"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

var (
	ErrNotFound           = errs.Wrap(errs.ErrNotFound, "user not found")
	ErrEmailTaken         = errs.Wrap(errs.ErrConflict, "email already registered")
	ErrInvalidCredentials = errs.Wrap(errs.ErrUnauthenticated, "invalid credentials")
)

// Table: users. Email is stored lower-cased so the unique index is
// case-insensitive on every dialect.
type User struct {
	ID           string     `gorm:"column:id;type:char(32);primaryKey" json:"id"`
	FirstName    string     `gorm:"column:first_name;size:100;not null" json:"first_name"`
	LastName     *string    `gorm:"column:last_name;size:100" json:"last_name"`
	Email        string     `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	Phone        *string    `gorm:"column:phone;size:32" json:"phone"`
	Role         Role       `gorm:"column:role;type:varchar(16);not null;default:'customer';index" json:"role"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// DisplayName joins first and last name.
func (u *User) DisplayName() string {
	if u.LastName == nil || *u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + *u.LastName
}

// Identity returns the request-scoped view of u.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.DisplayName(), Role: u.Role}
}

// NormalizeEmail trims and lower-cases an address before lookups and inserts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
