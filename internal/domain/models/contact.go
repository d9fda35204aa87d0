package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a trusted person the user can verify a caller against.
// The safe word is stored as a one-way hash, never in cleartext.
type Contact struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Relation     string    `json:"relation,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	SafeWordHash string    `json:"safe_word_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
