package state

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier for a board object.
func NewID() string {
	return uuid.NewString()
}
