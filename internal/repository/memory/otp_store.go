package memory

import (
	"context"
	"sync"

	"clubcms/internal/domain"
)

type otpStore struct {
	mu      sync.Mutex
	entries map[string]domain.OtpEntry
}

// NewOtpStore returns an in-process OtpStore. Suitable for single-instance
// deployments; entries do not survive restarts.
func NewOtpStore() domain.OtpStore {
	return &otpStore{entries: make(map[string]domain.OtpEntry)}
}

func (s *otpStore) Put(ctx context.Context, email string, entry domain.OtpEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry
	return nil
}

func (s *otpStore) Get(ctx context.Context, email string) (*domain.OtpEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *otpStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
