package domain

import "time"

// Player is a club member taking part in the lottery. The email links the
// player to the auth identity; only active players may purchase boards.
type Player struct {
	ID          uint       `json:"id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	IsActive    bool       `json:"is_active"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
