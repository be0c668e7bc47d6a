package domain

import "time"

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// User is an auth identity. It maps onto a Player row by email.
type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
