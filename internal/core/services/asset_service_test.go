package services

import (
	"context"
	"strings"
	"testing"
)

func TestAssetService_Create(t *testing.T) {
	tests := []struct {
		name        string
		assetName   string
		content     string
		expectError bool
	}{
		{"valid asset", "notes.md", "# Notes", false},
		{"empty name", "", "content", true},
		{"empty content", "notes.md", "", true},
		{"whitespace content", "notes.md", "  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			ctx := context.Background()
			setupWorkspace(t, env)

			asset, err := env.assets.Create(ctx, CreateAssetRequest{
				Name:    tt.assetName,
				Content: tt.content,
			})

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				if len(env.gw.Assets) != 0 {
					t.Error("Validation failures must not reach the gateway")
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if asset.AssetType != "document" {
				t.Errorf("Direct submissions are documents, got %q", asset.AssetType)
			}

			// The refreshed listing contains the new asset exactly once
			count := 0
			for _, a := range env.session.Assets() {
				if a.ID == asset.ID {
					count++
				}
			}
			if count != 1 {
				t.Errorf("Expected the new asset once in the listing, found %d", count)
			}
		})
	}
}

func TestAssetService_CreateRequiresWorkspace(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.assets.Create(ctx, CreateAssetRequest{Name: "a", Content: "b"})
	if err != ErrNoWorkspace {
		t.Errorf("Expected ErrNoWorkspace, got %v", err)
	}
}

func TestAssetService_FailedCreateLeavesStores(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	setupAsset(t, env, "existing.txt")
	if err := env.ref.RefreshAssets(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	before := len(env.session.Assets())

	env.gw.FailNext()
	_, err := env.assets.Create(ctx, CreateAssetRequest{Name: "new.txt", Content: "x"})
	if err == nil {
		t.Fatal("Expected error from failing gateway")
	}

	if len(env.session.Assets()) != before {
		t.Error("A failed mutation must leave the asset listing untouched")
	}
}

func TestAssetService_Upload(t *testing.T) {
	tests := []struct {
		name     string
		reqName  string
		filename string
		wantName string
		wantErr  bool
	}{
		{"explicit name", "Report", "report-v2.pdf", "Report", false},
		{"name falls back to filename", "", "report.pdf", "report.pdf", false},
		{"no file", "Report", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			ctx := context.Background()
			setupWorkspace(t, env)

			var reader = strings.NewReader("file bytes")
			req := UploadAssetRequest{Name: tt.reqName, Filename: tt.filename}
			if tt.filename != "" {
				req.Reader = reader
			}

			asset, err := env.assets.Upload(ctx, req)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if asset.Name != tt.wantName {
				t.Errorf("Expected name %q, got %q", tt.wantName, asset.Name)
			}
			if asset.FileSize != int64(len("file bytes")) {
				t.Errorf("Expected file size %d, got %d", len("file bytes"), asset.FileSize)
			}
		})
	}
}

func TestAssetService_DeleteRefreshesKitsToo(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	asset := setupAsset(t, env, "a.txt")
	setupKit(t, env, "Kit A")
	env.session.Selection().Toggle(asset.ID)
	if _, err := env.kits.AddSelected(ctx); err != nil {
		t.Fatalf("AddSelected failed: %v", err)
	}

	if err := env.assets.Delete(ctx, asset.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if len(env.session.Assets()) != 0 {
		t.Error("Asset listing must reflect the delete")
	}
	kits := env.session.Kits()
	if len(kits) != 1 || len(kits[0].Assets) != 0 {
		t.Error("Kit listing must reflect the removed member")
	}
}

func TestAssetService_Download(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	asset := setupAsset(t, env, "a.txt")

	data, err := env.assets.Download(ctx, asset.ID)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if string(data) != "content of a.txt" {
		t.Errorf("Unexpected content: %q", data)
	}

	if _, err := env.assets.Download(ctx, ""); err == nil {
		t.Error("Empty id must be rejected")
	}
}

func TestAssetService_FindByName(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	setupAsset(t, env, "Report.pdf")
	setupAsset(t, env, "report.pdf")
	if err := env.ref.RefreshAssets(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	// Exact match wins over case-insensitive
	asset, ok := env.assets.FindByName("report.pdf")
	if !ok || asset.Name != "report.pdf" {
		t.Error("Exact match must win")
	}

	if _, ok := env.assets.FindByName("REPORT.PDF"); !ok {
		t.Error("Case-insensitive fallback must match")
	}

	if _, ok := env.assets.FindByName("missing.txt"); ok {
		t.Error("Unknown names must not match")
	}
}
