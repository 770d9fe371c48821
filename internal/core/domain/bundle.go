package domain

import "time"

// Bundle is the export/import document for a whole workspace. Kit
// membership is recorded by asset name because ids do not survive a
// re-import; duplicate names therefore collide on import.
type Bundle struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Workspace  BundleWorkspace `json:"workspace"`
	Assets     []BundleAsset   `json:"assets"`
	Kits       []BundleKit     `json:"kits"`
}

// BundleVersion is the current export document version
const BundleVersion = 1

type BundleWorkspace struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type BundleAsset struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
	AssetType   string `json:"asset_type"`
	MimeType    string `json:"mime_type,omitempty"`
}

type BundleKit struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	AssetNames  []string `json:"asset_names"`
}
