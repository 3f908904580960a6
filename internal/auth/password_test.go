package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost, 2)
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	for _, pw := range []string{"pw123", "", "ünïcødé", strings.Repeat("x", 72)} {
		hash, err := h.Hash(ctx, pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)
		assert.True(t, h.Verify(ctx, pw, hash), "password %q", pw)
		assert.False(t, h.Verify(ctx, "!"+pw, hash), "password %q", pw)
	}
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	a, err := h.Hash(ctx, "same")
	require.NoError(t, err)
	b, err := h.Hash(ctx, "same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify(ctx, "same", a))
	assert.True(t, h.Verify(ctx, "same", b))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := newTestHasher()
	for _, hash := range []string{"", "plain", "$2a$", "$2a$04$short"} {
		assert.False(t, h.Verify(context.Background(), "pw", hash), "hash %q", hash)
	}
}

func TestPasswordHasher_TooLong(t *testing.T) {
	_, err := newTestHasher().Hash(context.Background(), strings.Repeat("x", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestPasswordHasher_BoundedWorkers(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, 1)
	require.NoError(t, h.sem.Acquire(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.Hash(ctx, "pw")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, h.Verify(ctx, "pw", "$2a$04$anything"))

	h.sem.Release(1)
	_, err = h.Hash(context.Background(), "pw")
	require.NoError(t, err)
}

func TestPasswordHasher_Concurrent(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := h.Hash(ctx, "pw")
			assert.NoError(t, err)
			assert.True(t, h.Verify(ctx, "pw", hash))
		}()
	}
	wg.Wait()
}
