package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps objects in a map. It backs local development without a
// bucket and the reconciliation tests.
type MemoryStore struct {
	mu              sync.RWMutex
	containerPrefix string
	publicBase      string
	objects         map[string][]byte
	contentTypes    map[string]string
}

func NewMemoryStore(containerPrefix string) *MemoryStore {
	return &MemoryStore{
		containerPrefix: containerPrefix,
		publicBase:      "memory://" + containerPrefix + "-store",
		objects:         make(map[string][]byte),
		contentTypes:    make(map[string]string),
	}
}

func (s *MemoryStore) Upload(ctx context.Context, path string, ownerID string, data []byte, contentType string) (string, error) {
	key := BuildObjectKey(s.containerPrefix, path, ownerID, ExtensionForContentType(contentType))

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	s.contentTypes[key] = contentType

	return s.urlFor(key), nil
}

func (s *MemoryStore) Copy(ctx context.Context, sourceURL string, destPath string, destOwnerID string) (string, error) {
	sourceKey := s.KeyFromURL(sourceURL)
	if sourceKey == "" {
		return "", fmt.Errorf("source url %q is not managed by this store", sourceURL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[sourceKey]
	if !ok {
		return "", fmt.Errorf("source object %s not found", sourceKey)
	}

	ext := "bin"
	if idx := lastDot(sourceKey); idx >= 0 {
		ext = sourceKey[idx+1:]
	}
	destKey := BuildObjectKey(s.containerPrefix, destPath, destOwnerID, ext)

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[destKey] = buf
	s.contentTypes[destKey] = s.contentTypes[sourceKey]

	return s.urlFor(destKey), nil
}

func (s *MemoryStore) Delete(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.objects, key)
		delete(s.contentTypes, key)
	}
	return nil
}

// Len reports the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// KeyFromURL resolves one of this store's URLs back to its object key.
func (s *MemoryStore) KeyFromURL(url string) string {
	return KeyFromURL(s.publicBase, url)
}

// Has reports whether the URL resolves to a stored object.
func (s *MemoryStore) Has(url string) bool {
	key := s.KeyFromURL(url)
	if key == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}

func (s *MemoryStore) urlFor(key string) string {
	return fmt.Sprintf("%s/%s", s.publicBase, key)
}
