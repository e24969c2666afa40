// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/lvldb"
	"github.com/vechain/lockstake/slot"
	"github.com/vechain/lockstake/state"
)

func newSvc(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	stater, err := state.NewStater(db, 0)
	require.NoError(t, err)
	st := stater.NewState()
	t.Cleanup(st.Release)
	return New(slot.NewContext(ledger.BytesToAddress([]byte("gs")), st))
}

func TestService_Empty(t *testing.T) {
	svc := newSvc(t)
	totals, err := svc.Totals()
	require.NoError(t, err)
	assert.Equal(t, &Totals{}, totals)
}

func TestService_AddRemove(t *testing.T) {
	svc := newSvc(t)

	require.NoError(t, svc.AddStake(1000, true))
	require.NoError(t, svc.AddStake(500, false))
	require.NoError(t, svc.AddStake(200, true))
	require.NoError(t, svc.RemoveStake(1500, true))
	require.NoError(t, svc.AddRewardsPaid(42))
	require.NoError(t, svc.AddReserveFunded(10_000))

	totals, err := svc.Totals()
	require.NoError(t, err)
	assert.Equal(t, &Totals{TotalStaked: 200, ActivePositions: 1, RewardsPaid: 42, ReserveFunded: 10_000}, totals)

	staked, err := svc.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, uint64(200), staked)
}

func TestService_Underflow(t *testing.T) {
	svc := newSvc(t)
	assert.Error(t, svc.RemoveStake(1, false))

	require.NoError(t, svc.AddStake(1, false))
	assert.Error(t, svc.RemoveStake(1, true), "no active position to close")
}
