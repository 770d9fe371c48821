package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports"
)

// AssetService coordinates asset mutations against the active workspace
type AssetService struct {
	gw      ports.Gateway
	session *Session
	ref     *Refresher
}

// NewAssetService creates a new asset service
func NewAssetService(gw ports.Gateway, session *Session, ref *Refresher) *AssetService {
	return &AssetService{gw: gw, session: session, ref: ref}
}

// CreateAssetRequest carries user input for a direct content submission
type CreateAssetRequest struct {
	Name        string
	Description string
	Content     string
}

// Create submits a text asset and refreshes the asset listing
func (s *AssetService) Create(ctx context.Context, req CreateAssetRequest) (*domain.Asset, error) {
	id, ok := s.session.ActiveWorkspace()
	if !ok {
		return nil, ErrNoWorkspace
	}
	if err := domain.ValidateName(req.Name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}

	asset, err := s.gw.CreateAsset(ctx, id, domain.AssetDraft{
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		AssetType:   domain.AssetTypeDocument,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	if err := s.ref.RefreshAssets(ctx); err != nil {
		return asset, err
	}
	return asset, nil
}

// UploadAssetRequest carries user input for a binary upload
type UploadAssetRequest struct {
	Name        string
	Description string
	Filename    string
	Reader      io.Reader
}

// Upload submits a binary asset as multipart form data and refreshes the
// asset listing. An empty name falls back to the filename, like the
// browser client.
func (s *AssetService) Upload(ctx context.Context, req UploadAssetRequest) (*domain.Asset, error) {
	id, ok := s.session.ActiveWorkspace()
	if !ok {
		return nil, ErrNoWorkspace
	}
	if req.Reader == nil || req.Filename == "" {
		return nil, fmt.Errorf("no file chosen")
	}

	name := req.Name
	if name == "" {
		name = req.Filename
	}

	asset, err := s.gw.UploadAsset(ctx, id, name, req.Description, req.Filename, req.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset: %w", err)
	}

	if err := s.ref.RefreshAssets(ctx); err != nil {
		return asset, err
	}
	return asset, nil
}

// List refreshes and returns the asset listing for the active workspace
func (s *AssetService) List(ctx context.Context) ([]domain.Asset, error) {
	if err := s.ref.RefreshAssets(ctx); err != nil {
		return nil, err
	}
	return s.session.Assets(), nil
}

// Delete deletes one asset. Both the asset listing and the kit listing are
// refreshed: kit membership views may hold the deleted asset, and the
// server is the source of truth for what remains.
func (s *AssetService) Delete(ctx context.Context, assetID string) error {
	if assetID == "" {
		return fmt.Errorf("asset id cannot be empty")
	}

	if err := s.gw.DeleteAsset(ctx, assetID); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	if err := s.ref.RefreshAssets(ctx); err != nil {
		return err
	}
	return s.ref.RefreshKits(ctx)
}

// Download fetches the raw bytes of an asset
func (s *AssetService) Download(ctx context.Context, assetID string) ([]byte, error) {
	if assetID == "" {
		return nil, fmt.Errorf("asset id cannot be empty")
	}

	data, err := s.gw.DownloadAsset(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to download asset: %w", err)
	}
	return data, nil
}

// FindByName returns the cached asset with the given name, preferring an
// exact match
func (s *AssetService) FindByName(name string) (*domain.Asset, bool) {
	assets := s.session.Assets()
	for i := range assets {
		if assets[i].Name == name {
			return &assets[i], true
		}
	}
	for i := range assets {
		if strings.EqualFold(assets[i].Name, name) {
			return &assets[i], true
		}
	}
	return nil, false
}
