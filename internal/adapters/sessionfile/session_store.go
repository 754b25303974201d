// Package sessionfile persists the signed-in user the way the original
// client kept it in durable local storage: one JSON document under a fixed
// key, restored on startup and removed on logout.
package sessionfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"rems-service/internal/core/domain"
)

// StorageKey is the fixed key the session record lives under.
const StorageKey = "user"

type sessionRecord struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore implements port.SessionStorePort over a single JSON file.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

func NewSessionStore(path string) (*SessionStore, error) {
	if path == "" {
		return nil, fmt.Errorf("session store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create session store directory: %w", err)
	}
	return &SessionStore{path: path}, nil
}

// Load reads the stored session. A missing file means nobody is signed in
// and returns (nil, nil); a corrupt file is an error the caller decides
// how to recover from.
func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var doc map[string]sessionRecord
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	record, ok := doc[StorageKey]
	if !ok {
		return nil, nil
	}

	return &domain.Session{
		Name:      record.Name,
		Email:     record.Email,
		Avatar:    record.Avatar,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Save writes the session under the fixed key, replacing any previous one.
// The write goes through a temp file plus rename so a crash never leaves a
// half-written record behind.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := map[string]sessionRecord{
		StorageKey: {
			Name:      session.Name,
			Email:     session.Email,
			Avatar:    session.Avatar,
			CreatedAt: session.CreatedAt,
		},
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an empty store is a no-op.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
