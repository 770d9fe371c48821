package services

import (
	"context"
	"testing"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports/mocks"
)

func TestSession_RestoresPersistedWorkspace(t *testing.T) {
	store := mocks.NewMockSessionStore()
	store.SaveWorkspace("ws-42")

	session := NewSession(store)

	id, ok := session.ActiveWorkspace()
	if !ok || id != "ws-42" {
		t.Errorf("Expected restored workspace ws-42, got %q (ok=%v)", id, ok)
	}
}

func TestSession_KitSelectionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	setupWorkspace(t, env)
	setupAsset(t, env, "a.txt")
	kit := setupKit(t, env, "Kit A")
	env.gw.QueryAnswer = "two documents"

	// A fresh session over the same store and server, as a new CLI run
	restarted := newTestEnvSharing(env.gw, env.store)
	if err := restarted.ref.RefreshAll(ctx); err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}

	selected, ok := restarted.session.SelectedKit()
	if !ok || selected.ID != kit.ID {
		t.Fatal("Kit selection must survive a restart once the listing confirms it")
	}
	if _, err := restarted.queries.Run(ctx, RunQueryRequest{Query: "what is here?", UseLLM: true}); err != nil {
		t.Errorf("Query against the restored kit failed: %v", err)
	}
	if _, err := restarted.shares.Create(ctx, 7); err != nil {
		t.Errorf("Share creation against the restored kit failed: %v", err)
	}
}

func TestSession_RestoredKitVanishedServerSide(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	setupWorkspace(t, env)
	kit := setupKit(t, env, "Kit A")
	delete(env.gw.Kits, kit.ID)

	restarted := newTestEnvSharing(env.gw, env.store)
	if err := restarted.ref.RefreshAll(ctx); err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}

	if _, ok := restarted.session.SelectedKit(); ok {
		t.Error("A restored kit id absent from the listing must not stay selected")
	}
	if _, ok := env.store.LoadKit(); ok {
		t.Error("The stale persisted kit id must be cleared")
	}
}

func TestSession_SwitchWorkspaceClearsPersistedKit(t *testing.T) {
	store := mocks.NewMockSessionStore()
	session := NewSession(store)
	session.Activate("ws-1")
	session.ReplaceKits([]domain.Kit{{ID: "k1"}})
	session.SelectKit("k1")

	if id, ok := store.LoadKit(); !ok || id != "k1" {
		t.Fatalf("Expected persisted k1, got %q (ok=%v)", id, ok)
	}

	session.Activate("ws-2")
	if _, ok := store.LoadKit(); ok {
		t.Error("Switching workspaces must clear the persisted kit id")
	}
}

func TestSession_DisabledStoreActsAbsent(t *testing.T) {
	store := mocks.NewMockSessionStore()
	store.Disabled = true

	session := NewSession(store)
	session.Activate("ws-1")

	if _, ok := session.ActiveWorkspace(); !ok {
		t.Error("Activation is in-memory state and must work without persistence")
	}

	// A fresh session sees nothing persisted
	restored := NewSession(store)
	if _, ok := restored.ActiveWorkspace(); ok {
		t.Error("Disabled store must not hand back an id")
	}
}

func TestSession_ActivateSwitchDropsDependentCaches(t *testing.T) {
	session := NewSession(mocks.NewMockSessionStore())
	session.Activate("ws-1")
	session.ReplaceAssets([]domain.Asset{{ID: "a1"}})
	session.ReplaceKits([]domain.Kit{{ID: "k1"}})
	session.SelectKit("k1")
	session.Selection().Toggle("a1")

	session.Activate("ws-2")

	if len(session.Assets()) != 0 {
		t.Error("Asset cache must be dropped when switching workspaces")
	}
	if len(session.Kits()) != 0 {
		t.Error("Kit cache must be dropped when switching workspaces")
	}
	if _, ok := session.SelectedKit(); ok {
		t.Error("Kit selection must be dropped when switching workspaces")
	}
	if session.Selection().Count() != 0 {
		t.Error("Asset selection must be dropped when switching workspaces")
	}
}

func TestSession_ReactivateSameWorkspaceKeepsCaches(t *testing.T) {
	session := NewSession(mocks.NewMockSessionStore())
	session.Activate("ws-1")
	session.ReplaceAssets([]domain.Asset{{ID: "a1"}})

	session.Activate("ws-1")

	if len(session.Assets()) != 1 {
		t.Error("Re-activating the same workspace must not drop caches")
	}
}

func TestSession_ReplaceAssetsClearsSelectionUnconditionally(t *testing.T) {
	session := NewSession(mocks.NewMockSessionStore())
	session.ReplaceAssets([]domain.Asset{{ID: "a1"}, {ID: "a2"}})
	session.Selection().Toggle("a1")

	// a1 survives the refresh, but the selection still resets
	session.ReplaceAssets([]domain.Asset{{ID: "a1"}, {ID: "a3"}})

	if session.Selection().Count() != 0 {
		t.Error("Selection must be cleared on every asset listing replacement")
	}
}

func TestSession_ReplaceKitsDropsVanishedSelection(t *testing.T) {
	session := NewSession(mocks.NewMockSessionStore())
	session.ReplaceKits([]domain.Kit{{ID: "k1"}, {ID: "k2"}})
	session.SelectKit("k1")

	// k1 survives: selection holds
	session.ReplaceKits([]domain.Kit{{ID: "k1"}})
	if kit, ok := session.SelectedKit(); !ok || kit.ID != "k1" {
		t.Fatal("Selection must survive a refresh that still contains the kit")
	}

	// k1 vanishes: selection drops
	session.ReplaceKits([]domain.Kit{{ID: "k2"}})
	if _, ok := session.SelectedKit(); ok {
		t.Error("Selection must drop when the kit vanishes from the listing")
	}
}

func TestSession_SelectKitRequiresListedKit(t *testing.T) {
	session := NewSession(mocks.NewMockSessionStore())
	session.ReplaceKits([]domain.Kit{{ID: "k1"}})

	if session.SelectKit("k-unknown") {
		t.Error("Selecting an unlisted kit must fail")
	}
	if !session.SelectKit("k1") {
		t.Error("Selecting a listed kit must succeed")
	}
}

func TestSession_InvalidateClearsEverything(t *testing.T) {
	store := mocks.NewMockSessionStore()
	session := NewSession(store)
	session.Activate("ws-1")
	session.ReplaceWorkspaces([]domain.Workspace{{ID: "ws-1"}})
	session.ReplaceAssets([]domain.Asset{{ID: "a1"}})
	session.ReplaceKits([]domain.Kit{{ID: "k1"}})
	session.SelectKit("k1")
	session.Selection().Toggle("a1")
	session.SetLastShare(&domain.SharingLink{Token: "tok"})

	session.Invalidate()

	if _, ok := session.ActiveWorkspace(); ok {
		t.Error("Active workspace must be cleared")
	}
	if len(session.Workspaces()) != 0 || len(session.Assets()) != 0 || len(session.Kits()) != 0 {
		t.Error("All listings must be cleared")
	}
	if _, ok := session.SelectedKit(); ok {
		t.Error("Kit selection must be cleared")
	}
	if session.Selection().Count() != 0 {
		t.Error("Asset selection must be cleared")
	}
	if _, ok := session.LastShare(); ok {
		t.Error("Last share must be cleared")
	}
	if _, ok := store.LoadWorkspace(); ok {
		t.Error("Persisted workspace id must be cleared")
	}
}
