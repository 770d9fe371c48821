package ports

import (
	"context"
	"io"

	"github.com/youfyi/kitctl/internal/core/domain"
)

// Gateway defines the port to the remote workspace service. One method per
// remote capability; every call is a single best-effort attempt with no
// retries. Non-success responses surface as classified errors (see
// internal/adapters/api).
type Gateway interface {
	// CreateWorkspace creates a workspace and returns the server record
	CreateWorkspace(ctx context.Context, name, description string) (*domain.Workspace, error)

	// ListWorkspaces returns all workspaces
	ListWorkspaces(ctx context.Context) ([]domain.Workspace, error)

	// GetWorkspace fetches one workspace by id
	GetWorkspace(ctx context.Context, id string) (*domain.Workspace, error)

	// DeleteWorkspace deletes a workspace; the server cascades to its
	// assets, kits and sharing links
	DeleteWorkspace(ctx context.Context, id string) error

	// CreateAsset submits a text/structured asset
	CreateAsset(ctx context.Context, workspaceID string, draft domain.AssetDraft) (*domain.Asset, error)

	// UploadAsset submits a binary asset as multipart form data
	UploadAsset(ctx context.Context, workspaceID, name, description, filename string, r io.Reader) (*domain.Asset, error)

	// ListAssets returns all assets in a workspace
	ListAssets(ctx context.Context, workspaceID string) ([]domain.Asset, error)

	// DownloadAsset fetches the raw bytes of an asset
	DownloadAsset(ctx context.Context, assetID string) ([]byte, error)

	// DeleteAsset deletes a single asset
	DeleteAsset(ctx context.Context, assetID string) error

	// CreateKit creates a kit, optionally seeded with asset ids
	CreateKit(ctx context.Context, workspaceID, name, description string, assetIDs []string) (*domain.Kit, error)

	// ListKits returns all kits in a workspace with embedded membership
	ListKits(ctx context.Context, workspaceID string) ([]domain.Kit, error)

	// GetKit fetches one kit by id
	GetKit(ctx context.Context, kitID string) (*domain.Kit, error)

	// UpdateKitAssets replaces a kit's membership with the given asset ids
	UpdateKitAssets(ctx context.Context, kitID string, assetIDs []string) (*domain.Kit, error)

	// DeleteKit deletes a kit
	DeleteKit(ctx context.Context, kitID string) error

	// CreateSharingLink creates a time-bounded share token for a kit
	CreateSharingLink(ctx context.Context, kitID string, expiresInDays int) (*domain.SharingLink, error)

	// ResolveSharingLink resolves a token to link metadata. Unknown tokens
	// come back as not-found errors, expired or inactive ones as forbidden.
	ResolveSharingLink(ctx context.Context, token string) (*domain.SharingLink, error)

	// ListSharedAssets returns the assets visible under a token
	ListSharedAssets(ctx context.Context, token string) ([]domain.Asset, error)

	// Query runs an authenticated retrieval query against a kit
	Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error)

	// QueryShared runs a token-scoped retrieval query
	QueryShared(ctx context.Context, token string, req domain.QueryRequest) (*domain.QueryResponse, error)
}

// SessionStore defines the port for remembering the active workspace and
// kit selection across runs. All operations are best-effort: a disabled or
// corrupt store behaves as absent and never propagates an error, since
// losing session continuity is non-fatal.
type SessionStore interface {
	// SaveWorkspace persists the active workspace id
	SaveWorkspace(id string)

	// LoadWorkspace returns the persisted workspace id, if any
	LoadWorkspace() (string, bool)

	// ClearWorkspace forgets the persisted workspace id
	ClearWorkspace()

	// SaveKit persists the selected kit id
	SaveKit(id string)

	// LoadKit returns the persisted kit id, if any
	LoadKit() (string, bool)

	// ClearKit forgets the persisted kit id
	ClearKit()
}
