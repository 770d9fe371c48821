package domain

import "time"

// Kit is a named subset of a workspace's assets, used as the scope for
// queries and sharing. The list endpoint reports membership as embedded
// asset records.
type Kit struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Assets      []Asset   `json:"assets"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssetIDs returns the ids of the kit's member assets
func (k *Kit) AssetIDs() []string {
	ids := make([]string, 0, len(k.Assets))
	for _, a := range k.Assets {
		ids = append(ids, a.ID)
	}
	return ids
}

// HasAsset reports whether the kit's membership contains the given asset id
func (k *Kit) HasAsset(id string) bool {
	for _, a := range k.Assets {
		if a.ID == id {
			return true
		}
	}
	return false
}
