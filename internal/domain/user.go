package domain

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	Active       bool
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal builds the authenticated identity for this user. Callers must
// only do this for users that passed the active/deleted lookup filter.
func (u User) Principal() Principal {
	return Principal{
		UserID: u.ID,
		Email:  u.Email,
		Roles:  []string{u.Role},
	}
}
