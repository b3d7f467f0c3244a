package repositories

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/Sl1me945/TaskManager/internal/models"
)

const revocationShardCount = 32

// RevocationStore tracks revoked token IDs until their natural expiry.
// It is read on every token validation and written on every sign-out,
// so the map is striped across fixed shards instead of sitting behind
// one global lock. A revoke that completes before a validation begins
// is observed by that validation; concurrent revoke/validate on the
// same jti may race, settling on revoked.
type RevocationStore struct {
	shards [revocationShardCount]revocationShard
}

type revocationShard struct {
	mu      sync.RWMutex
	entries map[string]models.RevokedToken
}

func NewRevocationStore() *RevocationStore {
	s := &RevocationStore{}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]models.RevokedToken)
	}
	return s
}

func (s *RevocationStore) shard(jti string) *revocationShard {
	h := fnv.New32a()
	h.Write([]byte(jti))
	return &s.shards[h.Sum32()%revocationShardCount]
}

// Revoke records jti as revoked until expiresAt, overwriting any
// earlier entry for the same jti.
func (s *RevocationStore) Revoke(jti string, expiresAt time.Time) {
	sh := s.shard(jti)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.entries[jti] = models.RevokedToken{
		TokenID:   jti,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
}

// IsRevoked reports whether jti is currently revoked. An entry whose
// recorded expiry has already passed is inert: it is dropped here and
// the lookup reports false (the token itself is expired by then, so
// the expiry check rejects it regardless).
func (s *RevocationStore) IsRevoked(jti string, now time.Time) bool {
	sh := s.shard(jti)

	sh.mu.RLock()
	entry, ok := sh.entries[jti]
	sh.mu.RUnlock()
	if !ok {
		return false
	}

	if entry.ExpiresAt.After(now) {
		return true
	}

	// Stale entry: lazy cleanup. Re-check under the write lock in case
	// a fresh revocation replaced it meanwhile.
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if cur, ok := sh.entries[jti]; ok && !cur.ExpiresAt.After(now) {
		delete(sh.entries, jti)
	}
	return false
}

// Sweep removes every entry whose expiry has passed and returns how
// many were dropped. Complements the lazy per-lookup purge so an idle
// process does not retain stale entries indefinitely.
func (s *RevocationStore) Sweep(now time.Time) int {
	removed := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for jti, entry := range sh.entries {
			if !entry.ExpiresAt.After(now) {
				delete(sh.entries, jti)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// Len returns the number of live entries across all shards.
func (s *RevocationStore) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}
