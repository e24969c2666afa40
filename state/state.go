// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/vechain/lockstake/kv"
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr ledger.Address
	key  ledger.Bytes32
}

func (k storageKey) encode() []byte {
	b := make([]byte, 0, len(k.addr)+len(k.key))
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

// State is a revertable view of storage slots on top of a store snapshot.
type State struct {
	stater *Stater
	snap   kv.Snapshot
	rev    uint64
	sm     *stackedmap.StackedMap[storageKey, []byte]
}

func newState(stater *Stater, snap kv.Snapshot, rev uint64) *State {
	s := &State{
		stater: stater,
		snap:   snap,
		rev:    rev,
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return s
}

func (s *State) cacheGetter(key storageKey) ([]byte, bool, error) {
	if v, ok := s.stater.cached(key, s.rev); ok {
		return v, true, nil
	}
	raw, err := s.snap.Get(key.encode())
	if err != nil {
		if !s.snap.IsNotFound(err) {
			return nil, false, err
		}
		raw = nil
	}
	s.stater.fill(key, s.rev, raw)
	return raw, true, nil
}

// Revision returns the store revision this state was built on.
func (s *State) Revision() uint64 {
	return s.rev
}

// GetRawStorage returns the raw value of the slot. Empty slots yield nil.
func (s *State) GetRawStorage(addr ledger.Address, key ledger.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage sets the raw value of the slot. An empty value clears the slot.
func (s *State) SetRawStorage(addr ledger.Address, key ledger.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, append([]byte(nil), raw...))
}

// GetStorage returns the slot value as a 32 bytes word.
func (s *State) GetStorage(addr ledger.Address, key ledger.Bytes32) (ledger.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return ledger.Bytes32{}, err
	}
	return ledger.BytesToBytes32(raw), nil
}

// SetStorage sets the slot to a 32 bytes word. A zero word clears the slot.
func (s *State) SetStorage(addr ledger.Address, key, value ledger.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	s.SetRawStorage(addr, key, value.Bytes())
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr ledger.Address, key ledger.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr ledger.Address, key ledger.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects the net changes of the state for committing.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	var order []storageKey
	s.sm.Journal(func(k storageKey, v []byte) bool {
		if _, ok := changes[k]; !ok {
			order = append(order, k)
		}
		changes[k] = v
		return true
	})
	return &Stage{stater: s.stater, rev: s.rev, changes: changes, order: order}
}

// Release releases the underlying snapshot. The state must not be used afterwards.
func (s *State) Release() {
	s.snap.Release()
}
