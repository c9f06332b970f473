package auth

import (
	"time"

	"lending-backend/internal/domain/user"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

type LoginInput struct {
	Email    string
	Password string
}

type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  *string   `json:"last_name,omitempty"`
	Phone     *string   `json:"phone"`
	Role      user.Role `json:"role"`
}

// Session is a freshly issued token for the cookie layer.
type Session struct {
	User      UserDTO
	Token     string
	ExpiresAt time.Time
}

func toDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
	}
}
