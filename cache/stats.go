// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts lookups against a cache.
type Stats struct {
	hits, misses atomic.Int64
	lastPermille atomic.Int64
}

func (s *Stats) hit()  { s.hits.Add(1) }
func (s *Stats) miss() { s.misses.Add(1) }

// Counts returns the number of hits and misses so far.
func (s *Stats) Counts() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}

// Permille returns the hit rate in thousandths, and whether it moved
// since the previous call.
func (s *Stats) Permille() (int64, bool) {
	hits, misses := s.Counts()
	var permille int64
	if total := hits + misses; total > 0 {
		permille = hits * 1000 / total
	}
	return permille, s.lastPermille.Swap(permille) != permille
}
