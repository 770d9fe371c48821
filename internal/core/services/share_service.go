package services

import (
	"context"
	"fmt"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports"
)

// ShareService creates and resolves sharing links. The session holds only
// the most recently created link.
type ShareService struct {
	gw      ports.Gateway
	session *Session
}

// NewShareService creates a new share service
func NewShareService(gw ports.Gateway, session *Session) *ShareService {
	return &ShareService{gw: gw, session: session}
}

// Create creates a sharing link for the selected kit and remembers it as
// the session's last share. No store refresh is needed: links are not part
// of any cached listing.
func (s *ShareService) Create(ctx context.Context, expiresInDays int) (*domain.SharingLink, error) {
	kit, ok := s.session.SelectedKit()
	if !ok {
		return nil, ErrNoKit
	}

	link, err := s.gw.CreateSharingLink(ctx, kit.ID, expiresInDays)
	if err != nil {
		return nil, fmt.Errorf("failed to create sharing link: %w", err)
	}

	s.session.SetLastShare(link)
	return link, nil
}

// Resolve looks up a token. Unknown tokens and expired tokens fail
// differently so the caller can render distinct messages.
func (s *ShareService) Resolve(ctx context.Context, token string) (*domain.SharingLink, error) {
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	link, err := s.gw.ResolveSharingLink(ctx, token)
	if err != nil {
		switch {
		case ports.IsNotFound(err):
			return nil, fmt.Errorf("sharing link not found or invalid")
		case ports.IsForbidden(err):
			return nil, fmt.Errorf("sharing link has expired or is inactive")
		default:
			return nil, fmt.Errorf("failed to resolve sharing link: %w", err)
		}
	}
	return link, nil
}

// Assets returns the assets visible under a token
func (s *ShareService) Assets(ctx context.Context, token string) ([]domain.Asset, error) {
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	assets, err := s.gw.ListSharedAssets(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared assets: %w", err)
	}
	return assets, nil
}
