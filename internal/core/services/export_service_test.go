package services

import (
	"context"
	"testing"

	"github.com/youfyi/kitctl/internal/core/domain"
)

func TestExportService_RoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	a1 := setupAsset(t, env, "a1.txt")
	a2 := setupAsset(t, env, "a2.txt")
	setupKit(t, env, "Kit A")
	env.session.Selection().Toggle(a1.ID)
	env.session.Selection().Toggle(a2.ID)
	if _, err := env.kits.AddSelected(ctx); err != nil {
		t.Fatalf("AddSelected failed: %v", err)
	}

	bundle, err := env.exports.Export(ctx)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if bundle.Version != domain.BundleVersion {
		t.Errorf("Expected bundle version %d, got %d", domain.BundleVersion, bundle.Version)
	}
	if len(bundle.Assets) != 2 {
		t.Fatalf("Expected 2 assets in bundle, got %d", len(bundle.Assets))
	}
	if len(bundle.Kits) != 1 || len(bundle.Kits[0].AssetNames) != 2 {
		t.Fatalf("Expected 1 kit with 2 member names, got %+v", bundle.Kits)
	}

	// Import into the same service: ids are re-assigned, membership is
	// re-resolved by name
	result, err := env.exports.Import(ctx, bundle)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Assets != 2 || result.Kits != 1 {
		t.Errorf("Expected 2 assets and 1 kit imported, got %d/%d", result.Assets, result.Kits)
	}
	if len(result.Unresolved) != 0 {
		t.Errorf("Expected no unresolved names, got %v", result.Unresolved)
	}

	// The imported workspace is active with refreshed listings
	active, ok := env.session.ActiveWorkspace()
	if !ok || active != result.WorkspaceID {
		t.Error("Imported workspace must become active")
	}
	if len(env.session.Assets()) != 2 {
		t.Errorf("Expected 2 assets in the new workspace, got %d", len(env.session.Assets()))
	}

	kits := env.session.Kits()
	if len(kits) != 1 {
		t.Fatalf("Expected 1 kit in the new workspace, got %d", len(kits))
	}
	if len(kits[0].Assets) != 2 {
		t.Errorf("Kit membership must be relinked to the new asset ids, got %d members", len(kits[0].Assets))
	}
	for _, member := range kits[0].Assets {
		if member.ID == a1.ID || member.ID == a2.ID {
			t.Error("Imported membership must use new ids, not the exported ones")
		}
	}
}

func TestExportService_ExportRequiresWorkspace(t *testing.T) {
	env := newTestEnv()

	if _, err := env.exports.Export(context.Background()); err != ErrNoWorkspace {
		t.Errorf("Expected ErrNoWorkspace, got %v", err)
	}
}

func TestExportService_ImportValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.exports.Import(ctx, nil); err == nil {
		t.Error("Nil bundle must be rejected")
	}

	if _, err := env.exports.Import(ctx, &domain.Bundle{Version: 99}); err == nil {
		t.Error("Unknown bundle versions must be rejected")
	}

	bad := &domain.Bundle{Version: domain.BundleVersion}
	if _, err := env.exports.Import(ctx, bad); err == nil {
		t.Error("A bundle without a workspace name must be rejected")
	}
}

func TestExportService_ImportReportsUnresolvedNames(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	bundle := &domain.Bundle{
		Version:   domain.BundleVersion,
		Workspace: domain.BundleWorkspace{Name: "Imported"},
		Assets: []domain.BundleAsset{
			{Name: "present.txt", Content: "x"},
		},
		Kits: []domain.BundleKit{
			{Name: "Kit A", AssetNames: []string{"present.txt", "missing.txt"}},
		},
	}

	result, err := env.exports.Import(ctx, bundle)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if len(result.Unresolved) != 1 {
		t.Fatalf("Expected 1 unresolved name, got %v", result.Unresolved)
	}

	kits := env.session.Kits()
	if len(kits) != 1 || len(kits[0].Assets) != 1 {
		t.Error("The kit must be created with only the resolvable members")
	}
}
