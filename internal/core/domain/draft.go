package domain

// AssetDraft carries user input for a direct content submission
type AssetDraft struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
	AssetType   string `json:"asset_type"`
}
