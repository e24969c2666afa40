// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/lvldb"
	"github.com/vechain/lockstake/slot"
	"github.com/vechain/lockstake/state"
)

func newSvc(t *testing.T) (*Service, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	stater, err := state.NewStater(db, 0)
	require.NoError(t, err)
	st := stater.NewState()
	t.Cleanup(st.Release)

	addr := ledger.DeriveAddress([]byte("engine"))
	return New(slot.NewContext(addr, st)), st
}

func TestPositionDefaults(t *testing.T) {
	svc, _ := newSvc(t)
	holder := ledger.BytesToAddress([]byte("alice"))

	p, err := svc.Get(holder)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
	assert.False(t, p.IsActive())

	ok, err := svc.Exists(holder)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPositionRoundTrip(t *testing.T) {
	svc, _ := newSvc(t)
	holder := ledger.BytesToAddress([]byte("alice"))

	p := &Position{
		StakedAmount:    1_000_000,
		StakedStartTime: 10,
		LastClaimTime:   20,
		LockExpiry:      10 + 2*ledger.SecondsPerYear,
		AprBps:          30,
		PendingRewards:  5,
		IsStaked:        true,
	}
	require.NoError(t, svc.Set(holder, p))

	got, err := svc.Get(holder)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	got.Reset()
	require.NoError(t, svc.Set(holder, got))
	again, err := svc.Get(holder)
	require.NoError(t, err)
	assert.True(t, again.IsEmpty())

	ok, err := svc.Exists(holder)
	require.NoError(t, err)
	assert.True(t, ok, "inactive record stays registered")
}

func TestCorruptRecord(t *testing.T) {
	svc, st := newSvc(t)
	holder := ledger.BytesToAddress([]byte("alice"))
	require.NoError(t, svc.Set(holder, &Position{IsStaked: true}))

	raw, err := rlp.EncodeToBytes([]uint64{1})
	require.NoError(t, err)
	pos := ledger.Blake2b(holder.Bytes(), slotPositions.Bytes())
	st.SetRawStorage(ledger.DeriveAddress([]byte("engine")), pos, raw)

	_, err = svc.Get(holder)
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	p := &Position{StakedAmount: 1}
	c := p.Clone()
	c.StakedAmount = 2
	assert.Equal(t, uint64(1), p.StakedAmount)
}
