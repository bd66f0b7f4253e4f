package mocks

import (
	"bytes"
	"context"
	"io"
)

// MockStorage is an in-memory implementation of storage.Storage
type MockStorage struct {
	Objects   map[string][]byte
	SaveError error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{Objects: make(map[string][]byte)}
}

func (m *MockStorage) Save(ctx context.Context, key string, r io.Reader, size int64) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	m.Objects[key] = buf.Bytes()
	return nil
}

func (m *MockStorage) Remove(ctx context.Context, key string) error {
	delete(m.Objects, key)
	return nil
}
