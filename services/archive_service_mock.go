package services

import (
	"sync"
)

// MockArchiveService is an in-memory implementation of ArchiveInterface for
// testing
type MockArchiveService struct {
	snapshots map[string][]byte // map of archive key to serialized snapshot
	mu        sync.RWMutex
}

// NewMockArchiveService creates a new mock archive service
func NewMockArchiveService() *MockArchiveService {
	return &MockArchiveService{
		snapshots: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global archive service instance
// for testing
func (m *MockArchiveService) SetAsMockForTesting() {
	SetArchiveService(m)
}

// PutSnapshot stores a serialized snapshot in the mock archive
func (m *MockArchiveService) PutSnapshot(key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(body))
	copy(stored, body)
	m.snapshots[key] = stored

	return nil
}

// Snapshots returns a copy of all archived snapshots (for testing assertions)
func (m *MockArchiveService) Snapshots() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]byte, len(m.snapshots))
	for k, v := range m.snapshots {
		out[k] = v
	}
	return out
}

// SnapshotExists checks if a snapshot exists under the given key
func (m *MockArchiveService) SnapshotExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.snapshots[key]
	return exists
}

// Clear removes all snapshots from the mock archive
func (m *MockArchiveService) Clear() {
	m.mu.Lock()
	m.snapshots = make(map[string][]byte)
	m.mu.Unlock()
}
