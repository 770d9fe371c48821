package services

import (
	"context"
	"net/http"
	"testing"
)

func TestRefresher_RequiresActiveWorkspace(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if err := env.ref.RefreshAssets(ctx); err != ErrNoWorkspace {
		t.Errorf("Expected ErrNoWorkspace, got %v", err)
	}
	if err := env.ref.RefreshKits(ctx); err != ErrNoWorkspace {
		t.Errorf("Expected ErrNoWorkspace, got %v", err)
	}
}

func TestRefresher_ReplacesListings(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	setupAsset(t, env, "a.txt")
	setupKit(t, env, "Kit A")

	if err := env.ref.RefreshAll(ctx); err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}

	if len(env.session.Assets()) != 1 {
		t.Errorf("Expected 1 asset after refresh, got %d", len(env.session.Assets()))
	}
	if len(env.session.Kits()) != 1 {
		t.Errorf("Expected 1 kit after refresh, got %d", len(env.session.Kits()))
	}
}

func TestRefresher_VanishedWorkspaceInvalidatesSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ws := setupWorkspace(t, env)

	// The workspace is deleted behind the client's back
	delete(env.gw.Workspaces, ws.ID)

	err := env.ref.RefreshAssets(ctx)
	if err != ErrWorkspaceGone {
		t.Fatalf("Expected ErrWorkspaceGone, got %v", err)
	}

	if _, ok := env.session.ActiveWorkspace(); ok {
		t.Error("Session must be invalidated after a 404 listing")
	}
	if _, ok := env.store.LoadWorkspace(); ok {
		t.Error("Persisted id must be cleared after a 404 listing")
	}
}

func TestRefresher_TransportErrorKeepsStores(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	setupAsset(t, env, "a.txt")

	if err := env.ref.RefreshAssets(ctx); err != nil {
		t.Fatalf("RefreshAssets failed: %v", err)
	}
	before := len(env.session.Assets())

	env.gw.FailNext()
	if err := env.ref.RefreshAssets(ctx); err == nil {
		t.Fatal("Expected an error from a failing gateway")
	}

	if len(env.session.Assets()) != before {
		t.Error("A failed refresh must leave the previous listing intact")
	}
	if _, ok := env.session.ActiveWorkspace(); !ok {
		t.Error("A transport error must not invalidate the session")
	}
}

func TestRefresher_ServerErrorIsNotInvalidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)

	env.gw.FailNextWith(http.StatusInternalServerError, "boom")
	err := env.ref.RefreshAssets(ctx)
	if err == nil || err == ErrWorkspaceGone {
		t.Fatalf("A 500 must fail without invalidating, got %v", err)
	}
	if _, ok := env.session.ActiveWorkspace(); !ok {
		t.Error("A 500 must not invalidate the session")
	}
}
