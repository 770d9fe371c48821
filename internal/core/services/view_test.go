package services

import (
	"testing"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports/mocks"
)

func TestBuildAssetRows(t *testing.T) {
	session := NewSession(mocks.NewMockSessionStore())
	session.ReplaceAssets([]domain.Asset{
		{ID: "a1", Name: "report.pdf", AssetType: "file", MimeType: "application/pdf", FileSize: 2048},
		{ID: "a2", Name: "notes.md", AssetType: "document"},
	})
	session.Selection().Toggle("a1")

	rows := BuildAssetRows(session)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if !rows[0].Checked || rows[1].Checked {
		t.Error("Checkbox state must mirror the selection set")
	}
	if rows[0].Icon != "PDF" {
		t.Errorf("Expected PDF icon, got %q", rows[0].Icon)
	}
	if rows[0].Size != "2.0 KB" {
		t.Errorf("Expected formatted size, got %q", rows[0].Size)
	}
	if rows[1].Size != "-" {
		t.Errorf("Unknown sizes must render as dash, got %q", rows[1].Size)
	}
}

func TestBuildKitRows(t *testing.T) {
	session := NewSession(mocks.NewMockSessionStore())
	session.ReplaceKits([]domain.Kit{
		{ID: "k1", Name: "Kit A", Assets: []domain.Asset{{ID: "a1"}}},
		{ID: "k2", Name: "Kit B"},
	})
	session.SelectKit("k2")

	rows := BuildKitRows(session)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].AssetCount != 1 || rows[1].AssetCount != 0 {
		t.Error("Asset counts must come from embedded membership")
	}
	if rows[0].Selected || !rows[1].Selected {
		t.Error("Selected flag must mirror the kit selection")
	}
}
