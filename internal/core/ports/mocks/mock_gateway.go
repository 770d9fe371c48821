package mocks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports"
)

// MockGateway is an in-memory implementation of the Gateway interface for
// testing. It mimics the remote service's semantics: server-assigned ids,
// cascade on workspace delete, membership replacement on kit update, and
// classified 404/403 failures. NextErr forces the next call to fail so
// tests can assert that failed mutations leave stores untouched.
type MockGateway struct {
	mu sync.Mutex

	Workspaces map[string]*domain.Workspace
	Assets     map[string]*domain.Asset
	Kits       map[string]*domain.Kit
	Links      map[string]*domain.SharingLink

	// NextErr fails the next call with this error, then resets
	NextErr error

	// QueryAnswer is returned verbatim as the answer field of queries
	QueryAnswer  string
	QuerySources []string

	nextID int
}

// NewMockGateway creates an empty mock gateway
func NewMockGateway() *MockGateway {
	return &MockGateway{
		Workspaces: make(map[string]*domain.Workspace),
		Assets:     make(map[string]*domain.Asset),
		Kits:       make(map[string]*domain.Kit),
		Links:      make(map[string]*domain.SharingLink),
	}
}

// FailNext makes the next gateway call fail with a plain error
func (m *MockGateway) FailNext() {
	m.NextErr = fmt.Errorf("simulated gateway failure")
}

// FailNextWith makes the next gateway call fail with a classified status
func (m *MockGateway) FailNextWith(status int, msg string) {
	m.NextErr = &ports.RemoteError{StatusCode: status, Message: msg}
}

func (m *MockGateway) takeErr() error {
	err := m.NextErr
	m.NextErr = nil
	return err
}

func (m *MockGateway) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func notFound(what string) error {
	return &ports.RemoteError{StatusCode: http.StatusNotFound, Message: what + " not found"}
}

// CreateWorkspace creates a workspace with a server-assigned id
func (m *MockGateway) CreateWorkspace(ctx context.Context, name, description string) (*domain.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	ws := &domain.Workspace{
		ID:          m.id("ws"),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.Workspaces[ws.ID] = ws
	out := *ws
	return &out, nil
}

// ListWorkspaces returns all workspaces
func (m *MockGateway) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	out := make([]domain.Workspace, 0, len(m.Workspaces))
	for _, ws := range m.Workspaces {
		out = append(out, *ws)
	}
	return out, nil
}

// GetWorkspace fetches one workspace
func (m *MockGateway) GetWorkspace(ctx context.Context, id string) (*domain.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	ws, ok := m.Workspaces[id]
	if !ok {
		return nil, notFound("Workspace")
	}
	out := *ws
	return &out, nil
}

// DeleteWorkspace deletes a workspace and cascades to its contents
func (m *MockGateway) DeleteWorkspace(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}

	if _, ok := m.Workspaces[id]; !ok {
		return notFound("Workspace")
	}
	delete(m.Workspaces, id)
	for aid, a := range m.Assets {
		if a.WorkspaceID == id {
			delete(m.Assets, aid)
		}
	}
	for kid, k := range m.Kits {
		if k.WorkspaceID == id {
			delete(m.Kits, kid)
		}
	}
	return nil
}

// CreateAsset submits a text asset
func (m *MockGateway) CreateAsset(ctx context.Context, workspaceID string, draft domain.AssetDraft) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	if _, ok := m.Workspaces[workspaceID]; !ok {
		return nil, notFound("Workspace")
	}
	asset := &domain.Asset{
		ID:          m.id("asset"),
		WorkspaceID: workspaceID,
		Name:        draft.Name,
		Description: draft.Description,
		Content:     draft.Content,
		AssetType:   draft.AssetType,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.Assets[asset.ID] = asset
	out := *asset
	return &out, nil
}

// UploadAsset submits a binary asset
func (m *MockGateway) UploadAsset(ctx context.Context, workspaceID, name, description, filename string, r io.Reader) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	if _, ok := m.Workspaces[workspaceID]; !ok {
		return nil, notFound("Workspace")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	asset := &domain.Asset{
		ID:          m.id("asset"),
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
		AssetType:   domain.AssetTypeFile,
		FileSize:    int64(len(data)),
		FilePath:    filename,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.Assets[asset.ID] = asset
	out := *asset
	return &out, nil
}

// ListAssets returns all assets in a workspace
func (m *MockGateway) ListAssets(ctx context.Context, workspaceID string) ([]domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	if _, ok := m.Workspaces[workspaceID]; !ok {
		return nil, notFound("Workspace")
	}
	out := []domain.Asset{}
	for _, a := range m.Assets {
		if a.WorkspaceID == workspaceID {
			out = append(out, *a)
		}
	}
	return out, nil
}

// DownloadAsset fetches the raw bytes of an asset
func (m *MockGateway) DownloadAsset(ctx context.Context, assetID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	a, ok := m.Assets[assetID]
	if !ok {
		return nil, notFound("Asset")
	}
	return []byte(a.Content), nil
}

// DeleteAsset deletes a single asset and removes it from kit membership
func (m *MockGateway) DeleteAsset(ctx context.Context, assetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}

	if _, ok := m.Assets[assetID]; !ok {
		return notFound("Asset")
	}
	delete(m.Assets, assetID)
	for _, k := range m.Kits {
		kept := k.Assets[:0]
		for _, a := range k.Assets {
			if a.ID != assetID {
				kept = append(kept, a)
			}
		}
		k.Assets = kept
	}
	return nil
}

// CreateKit creates a kit, optionally seeded with asset ids
func (m *MockGateway) CreateKit(ctx context.Context, workspaceID, name, description string, assetIDs []string) (*domain.Kit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	if _, ok := m.Workspaces[workspaceID]; !ok {
		return nil, notFound("Workspace")
	}
	kit := &domain.Kit{
		ID:          m.id("kit"),
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
		Assets:      []domain.Asset{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	for _, id := range assetIDs {
		if a, ok := m.Assets[id]; ok {
			kit.Assets = append(kit.Assets, *a)
		}
	}
	m.Kits[kit.ID] = kit
	out := m.copyKit(kit)
	return &out, nil
}

// ListKits returns all kits in a workspace with embedded membership
func (m *MockGateway) ListKits(ctx context.Context, workspaceID string) ([]domain.Kit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	if _, ok := m.Workspaces[workspaceID]; !ok {
		return nil, notFound("Workspace")
	}
	out := []domain.Kit{}
	for _, k := range m.Kits {
		if k.WorkspaceID == workspaceID {
			out = append(out, m.copyKit(k))
		}
	}
	return out, nil
}

// GetKit fetches one kit
func (m *MockGateway) GetKit(ctx context.Context, kitID string) (*domain.Kit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	k, ok := m.Kits[kitID]
	if !ok {
		return nil, notFound("Kit")
	}
	out := m.copyKit(k)
	return &out, nil
}

// UpdateKitAssets replaces a kit's membership
func (m *MockGateway) UpdateKitAssets(ctx context.Context, kitID string, assetIDs []string) (*domain.Kit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	k, ok := m.Kits[kitID]
	if !ok {
		return nil, notFound("Kit")
	}
	k.Assets = []domain.Asset{}
	for _, id := range assetIDs {
		if a, ok := m.Assets[id]; ok {
			k.Assets = append(k.Assets, *a)
		}
	}
	out := m.copyKit(k)
	return &out, nil
}

// DeleteKit deletes a kit
func (m *MockGateway) DeleteKit(ctx context.Context, kitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}

	if _, ok := m.Kits[kitID]; !ok {
		return notFound("Kit")
	}
	delete(m.Kits, kitID)
	return nil
}

// CreateSharingLink creates a share token for a kit
func (m *MockGateway) CreateSharingLink(ctx context.Context, kitID string, expiresInDays int) (*domain.SharingLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	if _, ok := m.Kits[kitID]; !ok {
		return nil, notFound("Kit")
	}
	link := &domain.SharingLink{
		ID:        m.id("link"),
		KitID:     kitID,
		Token:     m.id("token"),
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if expiresInDays > 0 {
		t := time.Now().AddDate(0, 0, expiresInDays)
		link.ExpiresAt = &t
	}
	m.Links[link.Token] = link
	out := *link
	return &out, nil
}

// ResolveSharingLink resolves a token, with 404 for unknown tokens and 403
// for inactive or expired ones
func (m *MockGateway) ResolveSharingLink(ctx context.Context, token string) (*domain.SharingLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	link, ok := m.Links[token]
	if !ok {
		return nil, notFound("Sharing link")
	}
	if !link.IsActive {
		return nil, &ports.RemoteError{StatusCode: http.StatusForbidden, Message: "Sharing link is inactive"}
	}
	if link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now()) {
		return nil, &ports.RemoteError{StatusCode: http.StatusForbidden, Message: "Sharing link has expired"}
	}
	out := *link
	return &out, nil
}

// ListSharedAssets returns the assets of the kit behind a token
func (m *MockGateway) ListSharedAssets(ctx context.Context, token string) ([]domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	link, ok := m.Links[token]
	if !ok {
		return nil, notFound("Sharing link")
	}
	kit, ok := m.Kits[link.KitID]
	if !ok {
		return nil, notFound("Kit")
	}
	out := make([]domain.Asset, len(kit.Assets))
	copy(out, kit.Assets)
	return out, nil
}

// Query returns the configured answer for an authenticated query
func (m *MockGateway) Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	if _, ok := m.Kits[req.KitID]; !ok {
		return nil, notFound("Kit")
	}
	return &domain.QueryResponse{
		Query:   req.Query,
		Answer:  m.QueryAnswer,
		Sources: m.QuerySources,
		Model:   req.Model,
	}, nil
}

// QueryShared returns the configured answer for a token-scoped query
func (m *MockGateway) QueryShared(ctx context.Context, token string, req domain.QueryRequest) (*domain.QueryResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	if _, ok := m.Links[token]; !ok {
		return nil, notFound("Sharing link")
	}
	return &domain.QueryResponse{
		Query:   req.Query,
		Answer:  m.QueryAnswer,
		Sources: m.QuerySources,
		Model:   req.Model,
	}, nil
}

// copyKit deep-copies a kit so callers cannot mutate mock state
func (m *MockGateway) copyKit(k *domain.Kit) domain.Kit {
	out := *k
	out.Assets = make([]domain.Asset, len(k.Assets))
	copy(out.Assets, k.Assets)
	return out
}
