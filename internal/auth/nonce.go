package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

const nonceMessagePrefix = "Sign this command to access the echelon room."

// BuildNonceMessage formats the challenge text a wallet is asked to sign
func BuildNonceMessage(nonce string) string {
	return fmt.Sprintf("%s\n\nNonce: %s", nonceMessagePrefix, nonce)
}

type nonceRecord struct {
	nonce     string
	expiresAt time.Time
}

// NonceStore keeps single-use wallet challenges in memory. A nonce is valid
// until its TTL elapses or it is consumed, whichever comes first. Issuing a
// new nonce for a wallet replaces the previous one.
type NonceStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[string]nonceRecord

	// now is swappable for tests
	now func() time.Time
}

// NewNonceStore creates a nonce store with the given challenge lifetime
func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{
		ttl:     ttl,
		records: make(map[string]nonceRecord),
		now:     time.Now,
	}
}

// Create issues a fresh nonce for a wallet and returns it with the challenge message
func (s *NonceStore) Create(wallet string) (nonce string, message string, err error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	nonce = hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// Drop expired challenges so the map does not grow with abandoned wallets
	for key, record := range s.records {
		if now.After(record.expiresAt) {
			delete(s.records, key)
		}
	}

	s.records[wallet] = nonceRecord{
		nonce:     nonce,
		expiresAt: now.Add(s.ttl),
	}

	return nonce, BuildNonceMessage(nonce), nil
}

// Consume validates and invalidates the wallet's outstanding nonce.
// It returns false for an unknown wallet, a mismatched nonce or an expired
// challenge. A successful consume removes the record; so does an expired one.
// A mismatch leaves the record in place so a typo does not burn the challenge.
func (s *NonceStore) Consume(wallet, nonce string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[wallet]
	if !ok {
		return false
	}

	if !s.now().Before(record.expiresAt) {
		delete(s.records, wallet)
		return false
	}

	if record.nonce != nonce {
		return false
	}

	delete(s.records, wallet)
	return true
}
