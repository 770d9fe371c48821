package mocks

// MockSessionStore is an in-memory SessionStore for testing. Disabled
// simulates a browser with storage turned off: writes vanish and reads
// come back absent, without any error surfacing.
type MockSessionStore struct {
	Disabled bool

	id    string
	hasID bool

	kitID  string
	hasKit bool

	Saves  int
	Clears int
}

// NewMockSessionStore creates an empty mock store
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

// SaveWorkspace persists the active workspace id
func (m *MockSessionStore) SaveWorkspace(id string) {
	m.Saves++
	if m.Disabled {
		return
	}
	m.id = id
	m.hasID = true
}

// LoadWorkspace returns the persisted workspace id, if any
func (m *MockSessionStore) LoadWorkspace() (string, bool) {
	if m.Disabled || !m.hasID {
		return "", false
	}
	return m.id, true
}

// ClearWorkspace forgets the persisted session, the kit id included
func (m *MockSessionStore) ClearWorkspace() {
	m.Clears++
	if m.Disabled {
		return
	}
	m.id = ""
	m.hasID = false
	m.kitID = ""
	m.hasKit = false
}

// SaveKit persists the selected kit id
func (m *MockSessionStore) SaveKit(id string) {
	if m.Disabled {
		return
	}
	m.kitID = id
	m.hasKit = true
}

// LoadKit returns the persisted kit id, if any
func (m *MockSessionStore) LoadKit() (string, bool) {
	if m.Disabled || !m.hasKit {
		return "", false
	}
	return m.kitID, true
}

// ClearKit forgets the persisted kit id
func (m *MockSessionStore) ClearKit() {
	if m.Disabled {
		return
	}
	m.kitID = ""
	m.hasKit = false
}
