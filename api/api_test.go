// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lockstake/api/custody"
	"github.com/vechain/lockstake/api/events"
	"github.com/vechain/lockstake/api/positions"
	"github.com/vechain/lockstake/api/tiers"
	"github.com/vechain/lockstake/api/utils"
	"github.com/vechain/lockstake/clock"
	"github.com/vechain/lockstake/journal"
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/lvldb"
	"github.com/vechain/lockstake/runtime"
	"github.com/vechain/lockstake/staker"
)

var (
	holder = ledger.BytesToAddress([]byte("holder"))
	funder = ledger.BytesToAddress([]byte("funder"))
)

type testServer struct {
	t     *testing.T
	url   string
	clock *clock.Mock
}

func newTestServer(t *testing.T, solo bool) *testServer {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	jnl, err := journal.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { jnl.Close() })

	clk := clock.NewMock(0)
	rt, err := runtime.New(db, jnl, clk, nil, runtime.Options{SolvencyCheck: true, AuthoritySeed: []byte("seed")})
	require.NoError(t, err)
	_, err = rt.Initialize(context.Background())
	require.NoError(t, err)

	ts := httptest.NewServer(New(rt, Options{AllowedOrigins: "*", EnableMetrics: true, SoloMode: solo}))
	t.Cleanup(ts.Close)
	return &testServer{t: t, url: ts.URL, clock: clk}
}

func (s *testServer) do(method, path string, body any, out any) int {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.url+path, r)
	require.NoError(s.t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(s.t, err)
	if out != nil && len(data) > 0 {
		require.NoError(s.t, json.Unmarshal(data, out), string(data))
	}
	return res.StatusCode
}

func (s *testServer) fund(reserve uint64) {
	code := s.do(http.MethodPost, "/custody/accounts/"+holder.String()+"/credit", utils.M{"amount": "5000000"}, nil)
	require.Equal(s.t, http.StatusOK, code)
	code = s.do(http.MethodPost, "/custody/accounts/"+funder.String()+"/credit", utils.M{"amount": reserve}, nil)
	require.Equal(s.t, http.StatusOK, code)
	code = s.do(http.MethodPost, "/custody/reserve", utils.M{"funder": funder, "amount": reserve}, nil)
	require.Equal(s.t, http.StatusOK, code)
}

func TestStakeClaimUnstake(t *testing.T) {
	s := newTestServer(t, true)
	s.fund(1_000_000)
	base := "/positions/" + holder.String()

	var ev staker.Event
	code := s.do(http.MethodPost, base+"/stake", utils.M{"amount": "0xf4240", "tier": 2}, &ev)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint64(1_000_000), ev.StakedAmount)
	assert.Equal(t, uint64(30), ev.AprBps)

	s.clock.Set(ledger.SecondsPerYear)
	var pos positions.Position
	code = s.do(http.MethodGet, base, nil, &pos)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, pos.IsStaked)
	assert.Equal(t, uint64(300_000), pos.Claimable)
	assert.Equal(t, ledger.SecondsPerYear, pos.Now)

	code = s.do(http.MethodPost, base+"/claim", nil, &ev)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint64(300_000), ev.Reward)

	var revert utils.RevertError
	code = s.do(http.MethodPost, base+"/unstake", utils.M{"amount": 1}, &revert)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "LockedError", revert.Kind)

	s.clock.Set(2 * ledger.SecondsPerYear)
	code = s.do(http.MethodPost, base+"/unstake", utils.M{"amount": 1_000_000}, &ev)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, ev.Closed)
	assert.Equal(t, uint64(300_000), ev.Reward)

	var acc custody.Account
	code = s.do(http.MethodGet, "/custody/accounts/"+holder.String(), nil, &acc)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint64(5_000_000+600_000), acc.Balance)
	assert.False(t, acc.Open)

	var pools custody.Pools
	code = s.do(http.MethodGet, "/custody", nil, &pools)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint64(0), pools.VaultBalance)
	assert.Equal(t, uint64(400_000), pools.ReserveBalance)
	assert.Equal(t, uint64(600_000), pools.Totals.RewardsPaid)

	var evs []events.FilteredEvent
	code = s.do(http.MethodPost, "/events", utils.M{
		"holders": []ledger.Address{holder},
		"kinds":   []staker.EventKind{staker.EventStake, staker.EventClaim, staker.EventUnstake},
	}, &evs)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, evs, 3)
	assert.Equal(t, staker.EventStake, evs[0].Kind)
	assert.Equal(t, staker.EventUnstake, evs[2].Kind)
	assert.Less(t, evs[0].Revision, evs[2].Revision)
}

func TestRejections(t *testing.T) {
	s := newTestServer(t, true)
	s.fund(100)
	base := "/positions/" + holder.String()

	var revert utils.RevertError
	code := s.do(http.MethodPost, base+"/stake", utils.M{"amount": 0, "tier": 1}, &revert)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NoTokens", revert.Kind)

	code = s.do(http.MethodPost, base+"/stake", utils.M{"amount": 1, "tier": 9}, &revert)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InvalidLockingPeriod", revert.Kind)

	code = s.do(http.MethodPost, base+"/claim", nil, &revert)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NotStaked", revert.Kind)

	code = s.do(http.MethodPost, base+"/stake", utils.M{"amount": 1, "tier": 1, "extra": true}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = s.do(http.MethodGet, "/positions/0x1234", nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = s.do(http.MethodPost, "/events", utils.M{"kinds": []string{"mint"}}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code = s.do(http.MethodPost, "/events", utils.M{"options": utils.M{"limit": 5000}}, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code = s.do(http.MethodPost, "/events", utils.M{"range": utils.M{"from": 10, "to": 1}}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFaucetDisabled(t *testing.T) {
	s := newTestServer(t, false)
	code := s.do(http.MethodPost, "/custody/accounts/"+holder.String()+"/credit", utils.M{"amount": 1}, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestTiers(t *testing.T) {
	s := newTestServer(t, false)

	var ts []tiers.Tier
	code := s.do(http.MethodGet, "/tiers", nil, &ts)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []tiers.Tier{
		{Tier: 1, AprBps: 15, Lock: ledger.SecondsPerYear},
		{Tier: 2, AprBps: 30, Lock: 2 * ledger.SecondsPerYear},
		{Tier: 3, AprBps: 60, Lock: 3 * ledger.SecondsPerYear},
		{Tier: 4, AprBps: 120, Lock: 4 * ledger.SecondsPerYear},
	}, ts)
}
