package dedup

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/light-bringer/pricetrack-service/internal/app/ingest/contracts"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"
)

// Key derives the duplicate-set membership token for a (platform, URL) pair.
// The platform is lower-cased so "Jumia" and "jumia" collapse to one identity.
// The key is never persisted.
func Key(platform, url string) string {
	sum := md5.Sum([]byte(strings.ToLower(platform) + ":" + url))
	return hex.EncodeToString(sum[:])
}

// Session is the duplicate filter for one ingestion run. It accumulates keys
// for the lifetime of the session and is discarded (or Reset) at session end;
// nothing survives across runs. Safe for concurrent use: the check-and-insert
// is one critical section, so two in-flight records with the same key cannot
// both observe "not present".
type Session struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSession creates an empty session set.
func NewSession() *Session {
	return &Session{seen: make(map[string]struct{})}
}

var _ contracts.Deduplicator = (*Session)(nil)

// Check rejects rec with a *domain.DuplicateError if its (platform, URL) key
// was already seen in this session, otherwise remembers the key and accepts.
func (s *Session) Check(rec *domain.CandidateRecord) error {
	key := Key(rec.Platform, rec.URL)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[key]; ok {
		return &domain.DuplicateError{Key: key, URL: rec.URL}
	}
	s.seen[key] = struct{}{}
	return nil
}

// Len returns the number of unique records seen so far.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Reset clears the session set for reuse by a new run.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[string]struct{})
}
