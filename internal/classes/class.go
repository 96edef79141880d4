// Package classes provides class record management. Documents are uploaded
// against a class, so class records must exist before ingestion.
package classes

import (
	"time"

	"github.com/google/uuid"
)

// Class represents a taught class that documents are attached to.
type Class struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Subject   *string   `json:"subject,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a new class.
type CreateCommand struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Subject *string `json:"subject,omitempty"`
}
