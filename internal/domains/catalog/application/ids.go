package application

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID returns a random 32-character lowercase hex identifier.
func NewID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
