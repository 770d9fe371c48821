package services

import (
	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports"
)

// Session is the single session-context object holding all client-side
// view state: the active workspace, the cached entity listings, the kit
// selection, the checked-asset set and the most recent sharing link. It is
// owned by the services and passed explicitly to rendering; nothing reads
// it through ambient globals.
//
// Listings are only ever replaced wholesale by a refresh, never patched
// incrementally, so a store either reflects a complete server response or
// its previous complete state.
type Session struct {
	store ports.SessionStore

	workspaceID string
	workspaces  []domain.Workspace
	assets      []domain.Asset
	kits        []domain.Kit

	selectedKitID string
	lastShare     *domain.SharingLink
	lastQuery     *domain.Interpretation

	selection *SelectionSet
}

// NewSession creates a session, restoring the persisted workspace and kit
// ids if present. The restored kit id only becomes visible through
// SelectedKit once a refreshed kit listing confirms the kit still exists.
func NewSession(store ports.SessionStore) *Session {
	s := &Session{
		store:     store,
		selection: NewSelectionSet(),
	}
	if id, ok := store.LoadWorkspace(); ok {
		s.workspaceID = id
		if kid, ok := store.LoadKit(); ok {
			s.selectedKitID = kid
		}
	}
	return s
}

// ActiveWorkspace returns the active workspace id, if any
func (s *Session) ActiveWorkspace() (string, bool) {
	return s.workspaceID, s.workspaceID != ""
}

// Activate makes the given workspace the active one and persists the
// choice. Switching workspaces drops the dependent caches; the caller is
// expected to refresh them.
func (s *Session) Activate(id string) {
	if s.workspaceID != id {
		s.assets = nil
		s.kits = nil
		s.selectedKitID = ""
		s.selection.Clear()
		s.store.ClearKit()
	}
	s.workspaceID = id
	s.store.SaveWorkspace(id)
}

// Invalidate resets the session to its no-workspace state and clears the
// persisted id. Called when the active workspace is deleted, locally or
// server-side.
func (s *Session) Invalidate() {
	s.workspaceID = ""
	s.workspaces = nil
	s.assets = nil
	s.kits = nil
	s.selectedKitID = ""
	s.lastShare = nil
	s.selection.Clear()
	s.store.ClearWorkspace()
}

// Workspaces returns the cached workspace listing
func (s *Session) Workspaces() []domain.Workspace {
	return s.workspaces
}

// ReplaceWorkspaces replaces the workspace listing wholesale
func (s *Session) ReplaceWorkspaces(ws []domain.Workspace) {
	s.workspaces = ws
}

// Assets returns the cached asset listing for the active workspace
func (s *Session) Assets() []domain.Asset {
	return s.assets
}

// ReplaceAssets replaces the asset listing wholesale. The selection set is
// cleared unconditionally, even when previously checked ids survive the
// refresh: selection does not cross a refresh boundary.
func (s *Session) ReplaceAssets(assets []domain.Asset) {
	s.assets = assets
	s.selection.Clear()
}

// Kits returns the cached kit listing for the active workspace
func (s *Session) Kits() []domain.Kit {
	return s.kits
}

// ReplaceKits replaces the kit listing wholesale. If the selected kit no
// longer appears the selection is dropped.
func (s *Session) ReplaceKits(kits []domain.Kit) {
	s.kits = kits
	if s.selectedKitID == "" {
		return
	}
	for _, k := range kits {
		if k.ID == s.selectedKitID {
			return
		}
	}
	s.selectedKitID = ""
	s.store.ClearKit()
}

// SelectKit marks a kit from the cached listing as selected and persists
// the choice
func (s *Session) SelectKit(id string) bool {
	for _, k := range s.kits {
		if k.ID == id {
			s.selectedKitID = id
			s.store.SaveKit(id)
			return true
		}
	}
	return false
}

// SelectedKit returns the selected kit, if one is still in the listing
func (s *Session) SelectedKit() (*domain.Kit, bool) {
	if s.selectedKitID == "" {
		return nil, false
	}
	for i := range s.kits {
		if s.kits[i].ID == s.selectedKitID {
			return &s.kits[i], true
		}
	}
	return nil, false
}

// ClearKitSelection drops the kit selection, locally and on disk
func (s *Session) ClearKitSelection() {
	s.selectedKitID = ""
	s.store.ClearKit()
}

// Selection returns the checked-asset set
func (s *Session) Selection() *SelectionSet {
	return s.selection
}

// LastShare returns the most recently created sharing link, if any
func (s *Session) LastShare() (*domain.SharingLink, bool) {
	return s.lastShare, s.lastShare != nil
}

// SetLastShare remembers the most recently created sharing link
func (s *Session) SetLastShare(link *domain.SharingLink) {
	s.lastShare = link
}

// LastQuery returns the interpretation of the most recent query, if any
func (s *Session) LastQuery() (*domain.Interpretation, bool) {
	return s.lastQuery, s.lastQuery != nil
}

// SetLastQuery remembers the interpretation of the most recent query
func (s *Session) SetLastQuery(in *domain.Interpretation) {
	s.lastQuery = in
}
