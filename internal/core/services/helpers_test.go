package services

import (
	"context"
	"testing"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports/mocks"
)

// testEnv bundles a session wired to the in-memory gateway with every
// service under test
type testEnv struct {
	gw      *mocks.MockGateway
	store   *mocks.MockSessionStore
	session *Session
	ref     *Refresher

	workspaces *WorkspaceService
	assets     *AssetService
	kits       *KitService
	shares     *ShareService
	queries    *QueryService
	exports    *ExportService
}

func newTestEnv() *testEnv {
	return newTestEnvSharing(mocks.NewMockGateway(), mocks.NewMockSessionStore())
}

// newTestEnvSharing builds a fresh session and service set over an existing
// gateway and store, simulating a new process against the same server and
// session file
func newTestEnvSharing(gw *mocks.MockGateway, store *mocks.MockSessionStore) *testEnv {
	session := NewSession(store)
	ref := NewRefresher(gw, session)

	return &testEnv{
		gw:         gw,
		store:      store,
		session:    session,
		ref:        ref,
		workspaces: NewWorkspaceService(gw, session, ref),
		assets:     NewAssetService(gw, session, ref),
		kits:       NewKitService(gw, session, ref),
		shares:     NewShareService(gw, session),
		queries:    NewQueryService(gw, session),
		exports:    NewExportService(gw, session, ref),
	}
}

// setupWorkspace creates and activates a workspace
func setupWorkspace(t *testing.T, env *testEnv) *domain.Workspace {
	t.Helper()
	ws, err := env.workspaces.Create(context.Background(), CreateWorkspaceRequest{Name: "Test Workspace"})
	if err != nil {
		t.Fatalf("Failed to create workspace: %v", err)
	}
	return ws
}

// setupAsset creates a text asset in the active workspace
func setupAsset(t *testing.T, env *testEnv, name string) *domain.Asset {
	t.Helper()
	asset, err := env.assets.Create(context.Background(), CreateAssetRequest{
		Name:    name,
		Content: "content of " + name,
	})
	if err != nil {
		t.Fatalf("Failed to create asset %q: %v", name, err)
	}
	return asset
}

// setupKit creates a kit in the active workspace and leaves it selected
func setupKit(t *testing.T, env *testEnv, name string) *domain.Kit {
	t.Helper()
	kit, err := env.kits.Create(context.Background(), CreateKitRequest{Name: name})
	if err != nil {
		t.Fatalf("Failed to create kit %q: %v", name, err)
	}
	return kit
}
