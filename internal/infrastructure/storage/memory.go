package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	crmapp "github.com/crm/backend/internal/application/crm"
)

// Ensure MemoryObjectStorage implements ObjectStorage
var _ crmapp.ObjectStorage = (*MemoryObjectStorage)(nil)

type storedObject struct {
	data        []byte
	contentType string
}

// MemoryObjectStorage keeps blobs in a map. Meant for development and
// tests; download URLs are fake but stable.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]storedObject

	// BaseURL prefixes generated download URLs
	BaseURL string
}

// NewMemoryObjectStorage creates an empty in-memory blob store
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		objects: make(map[string]storedObject),
		BaseURL: "https://storage.invalid",
	}
}

// Upload stores the given bytes under the key
func (s *MemoryObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = storedObject{data: buf, contentType: contentType}
	return nil
}

// GenerateDownloadURL returns a fake URL for the key. The object must
// exist.
func (s *MemoryObjectStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", time.Time{}, errors.New("object not found: " + key)
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/" + key, expiresAt, nil
}

// DeleteObject removes the object under the key
func (s *MemoryObjectStorage) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns a stored blob, for tests
func (s *MemoryObjectStorage) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj.data, obj.contentType, ok
}

// Len returns the number of stored blobs
func (s *MemoryObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
