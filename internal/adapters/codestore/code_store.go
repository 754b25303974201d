// Package codestore is the ephemeral storage of the password-recovery
// flow, the counterpart of the original client's session storage: nothing
// survives a process restart and at most one code is pending at a time.
package codestore

import (
	"context"
	"sync"

	"rems-service/internal/core/domain"
)

// CodeStore implements port.ResetCodeStorePort and port.PasswordStorePort
// in memory.
type CodeStore struct {
	mu        sync.Mutex
	pending   *domain.ResetCode
	passwords map[string]string
}

func NewCodeStore() *CodeStore {
	return &CodeStore{passwords: make(map[string]string)}
}

// Put stores the pending code, replacing any previous one.
func (s *CodeStore) Put(ctx context.Context, code domain.ResetCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &code
	return nil
}

// Get returns the pending code, or domain.ErrNoPendingReset.
func (s *CodeStore) Get(ctx context.Context) (domain.ResetCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.ResetCode{}, domain.ErrNoPendingReset
	}
	return *s.pending, nil
}

// Clear drops the pending code.
func (s *CodeStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	return nil
}

// SetPassword records the bcrypt hash of a recovered password.
func (s *CodeStore) SetPassword(ctx context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passwords[email] = passwordHash
	return nil
}

// PasswordHash looks a stored hash up, mainly for tests and diagnostics.
func (s *CodeStore) PasswordHash(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.passwords[email]
	return hash, ok
}
