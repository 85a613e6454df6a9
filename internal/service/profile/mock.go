package profile

import (
	"context"
	"sync"
	"time"

	"github.com/cupidlink/cupid-api/internal/persona"
)

// MockStore implements Store in memory for unit tests.
type MockStore struct {
	mu        sync.RWMutex
	profiles  map[string]*Profile
	positives map[string]map[string]any
	negatives map[string]map[string]any
	analyses  map[string]*persona.Analysis

	// Err, when set, is returned by every operation to simulate a
	// transport failure.
	Err error
}

// NewMockStore creates a new mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		profiles:  make(map[string]*Profile),
		positives: make(map[string]map[string]any),
		negatives: make(map[string]map[string]any),
		analyses:  make(map[string]*persona.Analysis),
	}
}

// PutProfile seeds a profile.
func (m *MockStore) PutProfile(p *Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p.Clone()
}

// PutPersonas seeds raw persona objects for a user.
func (m *MockStore) PutPersonas(userID string, positive, negative map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positives[userID] = positive
	m.negatives[userID] = negative
}

// PutAnalysis seeds a normalized analysis for a user.
func (m *MockStore) PutAnalysis(userID string, a *persona.Analysis) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses[userID] = a
}

func (m *MockStore) GetProfile(_ context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (m *MockStore) GetPositivePersona(_ context.Context, userID string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.positives[userID], nil
}

func (m *MockStore) GetNegativePersona(_ context.Context, userID string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.negatives[userID], nil
}

func (m *MockStore) GetPersonaAnalysis(_ context.Context, userID string) (*persona.Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.analyses[userID], nil
}

func (m *MockStore) UpdateNotificationPreferences(_ context.Context, userID string, prefs NotificationPreferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	p.Notifications = cloneNotifications(prefs)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockStore) UpdateVisibilitySettings(_ context.Context, userID string, settings VisibilitySettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	p.Visibility = cloneVisibility(settings)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Clear removes all data (useful for test cleanup).
func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]*Profile)
	m.positives = make(map[string]map[string]any)
	m.negatives = make(map[string]map[string]any)
	m.analyses = make(map[string]*persona.Analysis)
}

// Compile-time interface check
var _ Store = (*MockStore)(nil)
