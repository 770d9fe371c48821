package services

import (
	"context"
	"fmt"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports"
)

// KitService coordinates kit mutations and the client-side kit selection
type KitService struct {
	gw      ports.Gateway
	session *Session
	ref     *Refresher
}

// NewKitService creates a new kit service
func NewKitService(gw ports.Gateway, session *Session, ref *Refresher) *KitService {
	return &KitService{gw: gw, session: session, ref: ref}
}

// CreateKitRequest carries user input for kit creation
type CreateKitRequest struct {
	Name        string
	Description string
}

// Create creates a kit in the active workspace, refreshes the kit listing
// and selects the new kit, mirroring the flow where a freshly created kit
// becomes the target for add-to-kit and sharing.
func (s *KitService) Create(ctx context.Context, req CreateKitRequest) (*domain.Kit, error) {
	id, ok := s.session.ActiveWorkspace()
	if !ok {
		return nil, ErrNoWorkspace
	}
	if err := domain.ValidateName(req.Name); err != nil {
		return nil, err
	}

	kit, err := s.gw.CreateKit(ctx, id, req.Name, req.Description, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create kit: %w", err)
	}

	if err := s.ref.RefreshKits(ctx); err != nil {
		return kit, err
	}
	s.session.SelectKit(kit.ID)
	return kit, nil
}

// List refreshes and returns the kit listing for the active workspace
func (s *KitService) List(ctx context.Context) ([]domain.Kit, error) {
	if err := s.ref.RefreshKits(ctx); err != nil {
		return nil, err
	}
	return s.session.Kits(), nil
}

// Select marks a kit from the cached listing as selected. Selection is
// pure client-side state and is never persisted server-side.
func (s *KitService) Select(id string) error {
	if !s.session.SelectKit(id) {
		return fmt.Errorf("kit %q is not in the current listing", id)
	}
	return nil
}

// AddSelected adds the checked assets to the selected kit. The update
// endpoint replaces membership wholesale, so the request sends the union
// of the kit's current members and the checked ids to preserve add
// semantics. On success the kit listing is refreshed.
func (s *KitService) AddSelected(ctx context.Context) (int, error) {
	kit, ok := s.session.SelectedKit()
	if !ok {
		return 0, ErrNoKit
	}

	checked := s.session.Selection().Selected()
	if len(checked) == 0 {
		return 0, fmt.Errorf("no assets checked (select at least one)")
	}

	merged := kit.AssetIDs()
	added := 0
	for _, id := range checked {
		if !kit.HasAsset(id) {
			merged = append(merged, id)
			added++
		}
	}

	if _, err := s.gw.UpdateKitAssets(ctx, kit.ID, merged); err != nil {
		return 0, fmt.Errorf("failed to add assets to kit: %w", err)
	}

	if err := s.ref.RefreshKits(ctx); err != nil {
		return added, err
	}
	return added, nil
}

// Delete deletes a kit and refreshes the kit listing; deleting the
// selected kit drops the selection via the listing replacement
func (s *KitService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("kit id cannot be empty")
	}

	if err := s.gw.DeleteKit(ctx, id); err != nil {
		return fmt.Errorf("failed to delete kit: %w", err)
	}

	return s.ref.RefreshKits(ctx)
}

// Get fetches one kit record without touching session state
func (s *KitService) Get(ctx context.Context, id string) (*domain.Kit, error) {
	kit, err := s.gw.GetKit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch kit: %w", err)
	}
	return kit, nil
}
