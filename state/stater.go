// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/lockstake/cache"
	"github.com/vechain/lockstake/kv"
)

const storeBucket = kv.Bucket("s")

// revisionKey is shorter than any encoded storage key.
var revisionKey = []byte("rev")

type cachedSlot struct {
	since uint64 // revision from which the value is current
	value []byte
}

// Stater is the state creator. It owns the slot cache and the revision
// counter of the underlying store.
type Stater struct {
	store kv.Store
	cache *cache.LRU

	mu  sync.Mutex
	rev uint64
}

// NewStater create a new stater. cacheSize is the number of cached slots.
func NewStater(store kv.Store, cacheSize int) (*Stater, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	c, err := cache.NewLRU(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create slot cache")
	}
	bs := storeBucket.NewStore(store)

	var rev uint64
	data, err := bs.Get(revisionKey)
	if err != nil {
		if !bs.IsNotFound(err) {
			return nil, errors.Wrap(err, "load revision")
		}
	} else {
		if len(data) != 8 {
			return nil, errors.New("corrupted revision")
		}
		rev = binary.BigEndian.Uint64(data)
	}
	return &Stater{store: bs, cache: c, rev: rev}, nil
}

// NewState create a new state object on the latest committed revision.
// The caller must Release it.
func (s *Stater) NewState() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newState(s, s.store.Snapshot(), s.rev)
}

// Revision returns the latest committed revision.
func (s *Stater) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// CacheStats returns hit/miss counters of the slot cache.
func (s *Stater) CacheStats() *cache.Stats {
	return s.cache.Stats()
}

func (s *Stater) cached(key storageKey, rev uint64) ([]byte, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	slot := v.(*cachedSlot)
	if slot.since > rev {
		return nil, false
	}
	return slot.value, true
}

func (s *Stater) fill(key storageKey, rev uint64, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// only values read at the head revision are known to be current
	if rev != s.rev {
		return
	}
	if s.cache.Contains(key) {
		return
	}
	s.cache.Add(key, &cachedSlot{since: rev, value: value})
}
