package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceSingleUse(t *testing.T) {
	store := NewNonceStore(5 * time.Minute)

	nonce, message, err := store.Create("wallet-one")
	require.NoError(t, err)
	assert.Len(t, nonce, 32)
	assert.Contains(t, message, "Nonce: "+nonce)

	assert.True(t, store.Consume("wallet-one", nonce))
	// A nonce works exactly once
	assert.False(t, store.Consume("wallet-one", nonce))
}

func TestNonceMismatch(t *testing.T) {
	store := NewNonceStore(5 * time.Minute)

	nonce, _, err := store.Create("wallet-one")
	require.NoError(t, err)

	assert.False(t, store.Consume("wallet-one", "wrong"))
	assert.False(t, store.Consume("wallet-two", nonce))

	// The mismatch did not burn the real nonce
	assert.True(t, store.Consume("wallet-one", nonce))
}

func TestNonceReplacedByNewerChallenge(t *testing.T) {
	store := NewNonceStore(5 * time.Minute)

	first, _, err := store.Create("wallet-one")
	require.NoError(t, err)
	second, _, err := store.Create("wallet-one")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	assert.False(t, store.Consume("wallet-one", first))
	assert.True(t, store.Consume("wallet-one", second))
}

func TestNonceExpiry(t *testing.T) {
	store := NewNonceStore(5 * time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	nonce, _, err := store.Create("wallet-one")
	require.NoError(t, err)

	current = current.Add(5*time.Minute + time.Second)
	assert.False(t, store.Consume("wallet-one", nonce))

	// The expired record is evicted by the failed consume
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.NotContains(t, store.records, "wallet-one")
}

func TestNonceEviction(t *testing.T) {
	store := NewNonceStore(5 * time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	_, _, err := store.Create("wallet-stale")
	require.NoError(t, err)

	current = current.Add(10 * time.Minute)
	_, _, err = store.Create("wallet-fresh")
	require.NoError(t, err)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.NotContains(t, store.records, "wallet-stale")
	assert.Contains(t, store.records, "wallet-fresh")
}

func TestBuildNonceMessage(t *testing.T) {
	message := BuildNonceMessage("abc123")
	assert.Equal(t, "Sign this command to access the echelon room.\n\nNonce: abc123", message)
}
