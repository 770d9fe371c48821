package domain

import "time"

// SharingLink is a time-bounded opaque token granting read and query access
// to a kit without authentication.
type SharingLink struct {
	ID          string     `json:"id"`
	KitID       string     `json:"kit_id"`
	WorkspaceID string     `json:"workspace_id,omitempty"`
	Token       string     `json:"token"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// URL builds the shared-view address for the link
func (l *SharingLink) URL(base string) string {
	return base + "/ui/shared.html?token=" + l.Token
}
