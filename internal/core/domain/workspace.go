package domain

import (
	"fmt"
	"strings"
	"time"
)

// Workspace is the top-level container for assets and kits.
// Exactly one workspace is active per client session.
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidateName checks that an entity name is usable before any network call
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(name) > 200 {
		return fmt.Errorf("name too long (max 200 characters)")
	}

	return nil
}
