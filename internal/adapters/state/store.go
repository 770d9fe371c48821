package state

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore persists the active workspace id and the selected kit id to a
// small yaml file so the session survives restarts. Every operation is
// best-effort: a read-only disk or mangled file behaves as an absent value,
// never as an error, because losing session continuity is non-fatal.
type FileStore struct {
	path string
}

type sessionFile struct {
	WorkspaceID   string `yaml:"workspace_id"`
	SelectedKitID string `yaml:"selected_kit_id,omitempty"`
}

// NewFileStore creates a store at the default session path
func NewFileStore() *FileStore {
	return &FileStore{path: defaultSessionPath()}
}

// NewFileStoreAt creates a store at an explicit path, used by tests
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// SaveWorkspace persists the active workspace id, keeping any kit id
// already on file
func (s *FileStore) SaveWorkspace(id string) {
	f := s.read()
	f.WorkspaceID = id
	s.write(f)
}

// LoadWorkspace returns the persisted workspace id, if any
func (s *FileStore) LoadWorkspace() (string, bool) {
	f := s.read()
	return f.WorkspaceID, f.WorkspaceID != ""
}

// ClearWorkspace forgets the persisted session, the kit id included
func (s *FileStore) ClearWorkspace() {
	_ = os.Remove(s.path)
}

// SaveKit persists the selected kit id next to the workspace id
func (s *FileStore) SaveKit(id string) {
	f := s.read()
	f.SelectedKitID = id
	s.write(f)
}

// LoadKit returns the persisted kit id, if any
func (s *FileStore) LoadKit() (string, bool) {
	f := s.read()
	return f.SelectedKitID, f.SelectedKitID != ""
}

// ClearKit forgets the persisted kit id, keeping the workspace id
func (s *FileStore) ClearKit() {
	f := s.read()
	if f.SelectedKitID == "" {
		return
	}
	f.SelectedKitID = ""
	s.write(f)
}

// read returns the session file contents, or a zero value when the file is
// absent or mangled
func (s *FileStore) read() sessionFile {
	var f sessionFile
	data, err := os.ReadFile(s.path)
	if err != nil {
		return sessionFile{}
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return sessionFile{}
	}
	return f
}

func (s *FileStore) write(f sessionFile) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0644)
}

// defaultSessionPath follows XDG on Unix and AppData on Windows
func defaultSessionPath() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "kitctl", "session.yaml")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "kitctl-session.yaml")
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "kitctl", "session.yaml")
	}

	return filepath.Join(homeDir, ".local", "state", "kitctl", "session.yaml")
}
