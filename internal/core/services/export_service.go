package services

import (
	"context"
	"fmt"
	"time"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports"
)

// ExportService turns a workspace into a portable bundle and back. Kit
// membership travels by asset name, which is lossy when names collide; the
// import keeps the last asset seen under a duplicated name.
type ExportService struct {
	gw      ports.Gateway
	session *Session
	ref     *Refresher
}

// NewExportService creates a new export service
func NewExportService(gw ports.Gateway, session *Session, ref *Refresher) *ExportService {
	return &ExportService{gw: gw, session: session, ref: ref}
}

// Export captures the active workspace, its assets and its kits as a
// bundle. The stores are refreshed first so the bundle reflects
// server-confirmed state, not a possibly stale cache.
func (s *ExportService) Export(ctx context.Context) (*domain.Bundle, error) {
	id, ok := s.session.ActiveWorkspace()
	if !ok {
		return nil, ErrNoWorkspace
	}

	ws, err := s.gw.GetWorkspace(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workspace: %w", err)
	}

	if err := s.ref.RefreshAll(ctx); err != nil {
		return nil, err
	}

	bundle := &domain.Bundle{
		Version:    domain.BundleVersion,
		ExportedAt: time.Now().UTC(),
		Workspace: domain.BundleWorkspace{
			Name:        ws.Name,
			Description: ws.Description,
		},
	}

	for _, a := range s.session.Assets() {
		bundle.Assets = append(bundle.Assets, domain.BundleAsset{
			Name:        a.Name,
			Description: a.Description,
			Content:     a.Content,
			AssetType:   a.AssetType,
			MimeType:    a.MimeType,
		})
	}

	for _, k := range s.session.Kits() {
		bk := domain.BundleKit{Name: k.Name, Description: k.Description}
		for _, a := range k.Assets {
			bk.AssetNames = append(bk.AssetNames, a.Name)
		}
		bundle.Kits = append(bundle.Kits, bk)
	}

	return bundle, nil
}

// ImportResult summarizes what an import created
type ImportResult struct {
	WorkspaceID string
	Assets      int
	Kits        int
	Unresolved  []string
}

// Import re-creates a workspace from a bundle: workspace first, then all
// assets, then kits with membership re-resolved by asset name. Names that
// resolve to nothing are reported, not fatal. The new workspace becomes
// the active one.
func (s *ExportService) Import(ctx context.Context, bundle *domain.Bundle) (*ImportResult, error) {
	if bundle == nil {
		return nil, fmt.Errorf("bundle cannot be empty")
	}
	if bundle.Version != domain.BundleVersion {
		return nil, fmt.Errorf("unsupported bundle version %d", bundle.Version)
	}
	if err := domain.ValidateName(bundle.Workspace.Name); err != nil {
		return nil, fmt.Errorf("invalid workspace name in bundle: %w", err)
	}

	ws, err := s.gw.CreateWorkspace(ctx, bundle.Workspace.Name, bundle.Workspace.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	result := &ImportResult{WorkspaceID: ws.ID}

	// Duplicate names collide here: the later asset wins the slot.
	idByName := make(map[string]string)
	for _, ba := range bundle.Assets {
		assetType := ba.AssetType
		if assetType == "" {
			assetType = domain.AssetTypeDocument
		}
		asset, err := s.gw.CreateAsset(ctx, ws.ID, domain.AssetDraft{
			Name:        ba.Name,
			Description: ba.Description,
			Content:     ba.Content,
			AssetType:   assetType,
		})
		if err != nil {
			return result, fmt.Errorf("failed to import asset %q: %w", ba.Name, err)
		}
		idByName[ba.Name] = asset.ID
		result.Assets++
	}

	for _, bk := range bundle.Kits {
		var ids []string
		for _, name := range bk.AssetNames {
			if id, ok := idByName[name]; ok {
				ids = append(ids, id)
			} else {
				result.Unresolved = append(result.Unresolved, fmt.Sprintf("%s -> %s", bk.Name, name))
			}
		}
		if _, err := s.gw.CreateKit(ctx, ws.ID, bk.Name, bk.Description, ids); err != nil {
			return result, fmt.Errorf("failed to import kit %q: %w", bk.Name, err)
		}
		result.Kits++
	}

	s.session.Activate(ws.ID)
	if err := s.ref.RefreshAll(ctx); err != nil {
		return result, err
	}
	return result, nil
}
