package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/youfyi/kitctl/internal/core/ports"
)

// ErrNoWorkspace is returned by operations that need an active workspace
// when none is set
var ErrNoWorkspace = errors.New("no active workspace (create or select one first)")

// ErrNoKit is returned by operations that need a selected kit when none is
// selected
var ErrNoKit = errors.New("no kit selected (create or select one first)")

// ErrWorkspaceGone signals that a listing for the active workspace came
// back 404: the workspace was deleted server-side and the local reference
// has been invalidated.
var ErrWorkspaceGone = errors.New("active workspace no longer exists on the server; session cleared")

// Refresher re-issues list calls and replaces the dependent stores
// wholesale. Mutating services call it after each successful mutation so
// the session always reflects server-confirmed state.
type Refresher struct {
	gw      ports.Gateway
	session *Session
}

// NewRefresher creates a refresher over the given gateway and session
func NewRefresher(gw ports.Gateway, session *Session) *Refresher {
	return &Refresher{gw: gw, session: session}
}

// RefreshWorkspaces replaces the workspace listing
func (r *Refresher) RefreshWorkspaces(ctx context.Context) error {
	ws, err := r.gw.ListWorkspaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to list workspaces: %w", err)
	}
	r.session.ReplaceWorkspaces(ws)
	return nil
}

// RefreshAssets replaces the asset listing for the active workspace. A 404
// means the workspace vanished server-side: the session is invalidated and
// ErrWorkspaceGone is returned so the caller can notify rather than fail.
func (r *Refresher) RefreshAssets(ctx context.Context) error {
	id, ok := r.session.ActiveWorkspace()
	if !ok {
		return ErrNoWorkspace
	}

	assets, err := r.gw.ListAssets(ctx, id)
	if err != nil {
		if ports.IsNotFound(err) {
			r.session.Invalidate()
			return ErrWorkspaceGone
		}
		return fmt.Errorf("failed to list assets: %w", err)
	}

	r.session.ReplaceAssets(assets)
	return nil
}

// RefreshKits replaces the kit listing for the active workspace, with the
// same 404 invalidation behavior as RefreshAssets
func (r *Refresher) RefreshKits(ctx context.Context) error {
	id, ok := r.session.ActiveWorkspace()
	if !ok {
		return ErrNoWorkspace
	}

	kits, err := r.gw.ListKits(ctx, id)
	if err != nil {
		if ports.IsNotFound(err) {
			r.session.Invalidate()
			return ErrWorkspaceGone
		}
		return fmt.Errorf("failed to list kits: %w", err)
	}

	r.session.ReplaceKits(kits)
	return nil
}

// RefreshAll refreshes assets then kits for the active workspace
func (r *Refresher) RefreshAll(ctx context.Context) error {
	if err := r.RefreshAssets(ctx); err != nil {
		return err
	}
	return r.RefreshKits(ctx)
}
