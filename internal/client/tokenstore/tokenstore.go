// Package tokenstore keeps the single bearer credential between runs.
//
// Stores never inspect the credential; validation belongs to the session
// package. An absent credential is reported as ok == false, not as an error.
package tokenstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/eventflow/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/eventflow/internal/common"
)

// TokenStore is durable storage for one credential string.
type TokenStore interface {
	Save(ctx context.Context, credential string) error
	Load(ctx context.Context) (credential string, ok bool, err error)
	Clear(ctx context.Context) error
}

// SQLStore keeps the credential in the metadata table under common.TokenSlotKey.
type SQLStore struct {
	repo metadata.Repository
}

// NewSQLStore builds a SQLStore on top of a metadata repository.
func NewSQLStore(repo metadata.Repository) *SQLStore {
	return &SQLStore{repo: repo}
}

func (s *SQLStore) Save(ctx context.Context, credential string) error {
	if err := s.repo.Set(ctx, common.TokenSlotKey, []byte(credential)); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context) (string, bool, error) {
	v, ok, err := s.repo.Get(ctx, common.TokenSlotKey)
	if err != nil {
		return "", false, fmt.Errorf("load credential: %w", err)
	}
	if !ok || len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenSlotKey); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// MemoryStore keeps the credential for the lifetime of the process.
type MemoryStore struct {
	mu         sync.Mutex
	credential string
	set        bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential, m.set = credential, credential != ""
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential, m.set, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential, m.set = "", false
	return nil
}
