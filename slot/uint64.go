// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/lockstake/ledger"
)

// Uint64 is a wrapper for storage and retrieval of a uint64 held in a single slot.
type Uint64 struct {
	context *Context
	pos     ledger.Bytes32
}

func NewUint64(context *Context, pos ledger.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: pos}
}

func (u *Uint64) Get() (uint64, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(storage[24:]), nil
}

func (u *Uint64) Set(value uint64) {
	var storage ledger.Bytes32
	binary.BigEndian.PutUint64(storage[24:], value)
	u.context.state.SetStorage(u.context.address, u.pos, storage)
}

// Add increases the stored value, failing on overflow.
func (u *Uint64) Add(delta uint64) error {
	v, err := u.Get()
	if err != nil {
		return err
	}
	if v+delta < v {
		return errors.New("uint64 slot overflow")
	}
	u.Set(v + delta)
	return nil
}

// Sub decreases the stored value, failing on underflow.
func (u *Uint64) Sub(delta uint64) error {
	v, err := u.Get()
	if err != nil {
		return err
	}
	if delta > v {
		return errors.New("uint64 slot underflow")
	}
	u.Set(v - delta)
	return nil
}
