// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/lockstake/clock"
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/lvldb"
	"github.com/vechain/lockstake/staker/custody"
	"github.com/vechain/lockstake/staker/position"
	"github.com/vechain/lockstake/state"
)

const year = ledger.SecondsPerYear

var (
	alice  = ledger.BytesToAddress([]byte("alice"))
	bob    = ledger.BytesToAddress([]byte("bob"))
	funder = ledger.BytesToAddress([]byte("funder"))
)

type testEnv struct {
	t      *testing.T
	staker *Staker
	state  *state.State
	clock  *clock.Mock
}

func newTestEnv(t *testing.T, solvencyCheck bool) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stater, err := state.NewStater(db, 0)
	require.NoError(t, err)
	st := stater.NewState()
	t.Cleanup(st.Release)

	clk := clock.NewMock(0)
	s := New(EngineAddress, st, Config{
		Clock:         clk,
		AuthoritySeed: []byte("test-seed"),
		SolvencyCheck: solvencyCheck,
	})
	_, err = s.Initialize()
	require.NoError(t, err)

	return &testEnv{t: t, staker: s, state: st, clock: clk}
}

// fund credits the wallets and puts reserve into the Reward Reserve.
func (e *testEnv) fund(reserve uint64, holders ...ledger.Address) {
	for _, h := range holders {
		_, err := e.staker.Credit(h, 10_000_000)
		require.NoError(e.t, err)
	}
	if reserve > 0 {
		_, err := e.staker.Credit(funder, reserve)
		require.NoError(e.t, err)
		_, err = e.staker.FundReserve(funder, reserve)
		require.NoError(e.t, err)
	}
}

func (e *testEnv) position(holder ledger.Address) *position.Position {
	p, err := e.staker.Position(holder)
	require.NoError(e.t, err)
	return p
}

func (e *testEnv) wallet(holder ledger.Address) uint64 {
	bal, err := e.staker.WalletBalance(holder)
	require.NoError(e.t, err)
	return bal
}

func (e *testEnv) balances() *Balances {
	b, err := e.staker.Balances()
	require.NoError(e.t, err)
	return b
}

func (e *testEnv) subAccount(holder ledger.Address) *custody.Account {
	acc, err := e.staker.SubAccount(holder)
	require.NoError(e.t, err)
	return acc
}

func (e *testEnv) checkInvariants() {
	require.NoError(e.t, e.staker.CheckInvariants())
}
