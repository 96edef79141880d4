// Package users provides user record management. Uploads are attributed to a
// user, and document responses carry the uploader's display name.
package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents a staff member who can upload documents.
type User struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      *string   `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a new user.
type CreateCommand struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Role     *string `json:"role,omitempty"`
}
