// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrStaleStage is returned when committing a stage whose base revision is
// no longer the head of the store.
var ErrStaleStage = errors.New("state: stage built on stale revision")

// Stage holds the net changes of a state, ready to be committed.
type Stage struct {
	stater  *Stater
	rev     uint64
	changes map[storageKey][]byte
	order   []storageKey
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.order)
}

// Commit writes all changes to the store in one atomic bulk and advances the
// revision. It returns the new revision.
func (s *Stage) Commit() (uint64, error) {
	st := s.stater
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.rev != s.rev {
		return 0, ErrStaleStage
	}
	if len(s.order) == 0 {
		return st.rev, nil
	}

	bulk := st.store.Bulk()
	for _, k := range s.order {
		v := s.changes[k]
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.encode())
		} else {
			err = bulk.Put(k.encode(), v)
		}
		if err != nil {
			return 0, &Error{err}
		}
	}
	var rev [8]byte
	binary.BigEndian.PutUint64(rev[:], st.rev+1)
	if err := bulk.Put(revisionKey, rev[:]); err != nil {
		return 0, &Error{err}
	}
	if err := bulk.Write(); err != nil {
		return 0, &Error{err}
	}

	st.rev++
	for _, k := range s.order {
		st.cache.Add(k, &cachedSlot{since: st.rev, value: s.changes[k]})
	}
	return st.rev, nil
}
