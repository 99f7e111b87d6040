package domain

import "github.com/google/uuid"

// User is an application account stored in the users collection.
// Credentials are compared verbatim against the stored value; the users
// file is the only authentication source.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     Role      `json:"role"`
}
