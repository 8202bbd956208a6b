package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clubcms/internal/domain"
)

const keyPrefix = "otp:"

type otpStore struct {
	client *redis.Client
}

// NewOtpStore returns an OtpStore backed by Redis, for multi-instance
// deployments. Entries carry a TTL matching their expiry so stale codes are
// swept by Redis itself.
func NewOtpStore(client *redis.Client) domain.OtpStore {
	return &otpStore{client: client}
}

func (s *otpStore) Put(ctx context.Context, email string, entry domain.OtpEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode otp entry: %w", err)
	}
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, keyPrefix+email, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp entry: %w", err)
	}
	return nil
}

func (s *otpStore) Get(ctx context.Context, email string) (*domain.OtpEntry, error) {
	payload, err := s.client.Get(ctx, keyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load otp entry: %w", err)
	}
	var entry domain.OtpEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode otp entry: %w", err)
	}
	return &entry, nil
}

func (s *otpStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, keyPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to delete otp entry: %w", err)
	}
	return nil
}
