package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/synapsehub/support-portal/internal/domain"
)

// CodeStore is the default in-memory pending-code store. State is lost on
// process restart; deployments that need durability swap in the
// DynamoDB-backed store.
//
// Expiry is enforced by the verifier on read: Get returns expired entries so
// the caller can tell "expired" apart from "never issued". The background
// sweep only reclaims memory for codes that were requested and then abandoned.
type CodeStore struct {
	mu    sync.Mutex
	codes map[string]domain.PendingCode
}

func NewCodeStore() *CodeStore {
	s := &CodeStore{codes: make(map[string]domain.PendingCode)}
	go s.sweep()
	return s
}

// Put stores the pending code, unconditionally replacing any existing entry
// for the same email.
func (s *CodeStore) Put(_ context.Context, pc *domain.PendingCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[pc.Email] = *pc
	return nil
}

func (s *CodeStore) Get(_ context.Context, email string) (*domain.PendingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pc, ok := s.codes[email]
	if !ok {
		return nil, fmt.Errorf("pending code for %q: %w", email, domain.ErrNotFound)
	}
	return &pc, nil
}

func (s *CodeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

// sweep removes long-expired entries every 10 minutes.
func (s *CodeStore) sweep() {
	for {
		time.Sleep(10 * time.Minute)
		now := time.Now().Unix()
		s.mu.Lock()
		for email, pc := range s.codes {
			if pc.ExpiresAt < now {
				delete(s.codes, email)
			}
		}
		s.mu.Unlock()
	}
}
