package services

import (
	"context"
	"fmt"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports"
)

// WorkspaceService coordinates workspace mutations and the store refreshes
// they require
type WorkspaceService struct {
	gw      ports.Gateway
	session *Session
	ref     *Refresher
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(gw ports.Gateway, session *Session, ref *Refresher) *WorkspaceService {
	return &WorkspaceService{gw: gw, session: session, ref: ref}
}

// CreateWorkspaceRequest carries user input for workspace creation
type CreateWorkspaceRequest struct {
	Name        string
	Description string
}

// Create validates the input, creates the workspace and activates it. The
// dependent listings are refreshed so the session reflects the (empty)
// server state of the new workspace.
func (s *WorkspaceService) Create(ctx context.Context, req CreateWorkspaceRequest) (*domain.Workspace, error) {
	if err := domain.ValidateName(req.Name); err != nil {
		return nil, err
	}

	ws, err := s.gw.CreateWorkspace(ctx, req.Name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.session.Activate(ws.ID)
	if err := s.ref.RefreshAll(ctx); err != nil {
		return ws, err
	}
	return ws, nil
}

// List refreshes and returns the workspace listing
func (s *WorkspaceService) List(ctx context.Context) ([]domain.Workspace, error) {
	if err := s.ref.RefreshWorkspaces(ctx); err != nil {
		return nil, err
	}
	return s.session.Workspaces(), nil
}

// Select makes the given workspace active and refreshes its dependent
// stores. A 404 while listing invalidates the session (the id was stale).
func (s *WorkspaceService) Select(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("workspace id cannot be empty")
	}

	s.session.Activate(id)
	return s.ref.RefreshAll(ctx)
}

// Get fetches one workspace record without touching session state
func (s *WorkspaceService) Get(ctx context.Context, id string) (*domain.Workspace, error) {
	ws, err := s.gw.GetWorkspace(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workspace: %w", err)
	}
	return ws, nil
}

// Delete deletes a workspace. The server cascades to assets, kits and
// links; if the deleted workspace was the active one the whole session is
// invalidated, dropping every dependent cache and the persisted id.
func (s *WorkspaceService) Delete(ctx context.Context, id string) error {
	if err := s.gw.DeleteWorkspace(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	if active, ok := s.session.ActiveWorkspace(); ok && active == id {
		s.session.Invalidate()
	}
	return nil
}
