package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process MediaStorage for tests and local development. It
// honours the same contract as S3Storage: the local file is always removed.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailUploads makes every Upload fail after removing the local file.
	FailUploads bool
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) Upload(_ context.Context, localPath string) (*Asset, error) {
	if localPath == "" {
		return nil, ErrNoFile
	}
	defer os.Remove(localPath)

	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("memory storage read %s: %w", localPath, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUploads {
		return nil, fmt.Errorf("memory storage: upload rejected")
	}

	url := "memory://" + uuid.NewString() + filepath.Ext(localPath)
	m.objects[url] = data
	return &Asset{URL: url}, nil
}

func (m *Memory) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, url)
	return nil
}

// Has reports whether url is currently stored.
func (m *Memory) Has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[url]
	return ok
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
