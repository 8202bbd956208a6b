package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"clubcms/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOtpStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewOtpStore()

	entry, err := store.Get(ctx, "admin@club.example")
	require.NoError(t, err)
	assert.Nil(t, entry, "missing email yields nil entry")

	put := domain.OtpEntry{Code: "abc123", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, store.Put(ctx, "admin@club.example", put))

	entry, err = store.Get(ctx, "admin@club.example")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, put.Code, entry.Code)

	require.NoError(t, store.Delete(ctx, "admin@club.example"))
	entry, err = store.Get(ctx, "admin@club.example")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestOtpStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewOtpStore()

	require.NoError(t, store.Put(ctx, "admin@club.example", domain.OtpEntry{Code: "first"}))
	require.NoError(t, store.Put(ctx, "admin@club.example", domain.OtpEntry{Code: "second"}))

	entry, err := store.Get(ctx, "admin@club.example")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "second", entry.Code)
}

func TestOtpStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewOtpStore()

	require.NoError(t, store.Put(ctx, "admin@club.example", domain.OtpEntry{Code: "abc123"}))
	entry, err := store.Get(ctx, "admin@club.example")
	require.NoError(t, err)
	entry.Code = "mutated"

	again, err := store.Get(ctx, "admin@club.example")
	require.NoError(t, err)
	assert.Equal(t, "abc123", again.Code)
}

func TestOtpStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewOtpStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Put(ctx, "admin@club.example", domain.OtpEntry{Code: "abc123"})
			_, _ = store.Get(ctx, "admin@club.example")
			_ = store.Delete(ctx, "admin@club.example")
		}()
	}
	wg.Wait()
}
