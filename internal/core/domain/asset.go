package domain

import (
	"fmt"
	"strings"
	"time"
)

// Asset is a single document or file record in a workspace.
// Content is inline text for document assets and base64 for uploads.
type Asset struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content,omitempty"`
	AssetType   string    `json:"asset_type"`
	MimeType    string    `json:"mime_type,omitempty"`
	FileSize    int64     `json:"file_size,omitempty"`
	FilePath    string    `json:"file_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Asset kinds as reported by the service
const (
	AssetTypeDocument   = "document"
	AssetTypeFile       = "file"
	AssetTypeImage      = "image"
	AssetTypeVideo      = "video"
	AssetTypeAudio      = "audio"
	AssetTypeCode       = "code"
	AssetTypeArchive    = "archive"
	AssetTypeExecutable = "executable"
)

// FormatSize renders a byte count in human readable form.
// Unknown sizes (negative) render as "-".
func FormatSize(n int64) string {
	if n < 0 {
		return "-"
	}
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	if n < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	}
	return fmt.Sprintf("%.2f MB", float64(n)/1024/1024)
}

// FileIcon returns a short label for an asset's mime type, used in listings
func FileIcon(mime string) string {
	switch {
	case mime == "":
		return "DOC"
	case strings.HasPrefix(mime, "image/"):
		return "IMG"
	case mime == "application/pdf":
		return "PDF"
	case strings.HasPrefix(mime, "text/"):
		return "TXT"
	case strings.HasPrefix(mime, "audio/"):
		return "AUD"
	case strings.HasPrefix(mime, "video/"):
		return "VID"
	default:
		return "FILE"
	}
}
