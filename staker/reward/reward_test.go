// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math"
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/staker/reverts"
)

func reference(elapsed, principal, apr uint64) *big.Int {
	n := new(big.Int).SetUint64(elapsed)
	n.Mul(n, new(big.Int).SetUint64(apr))
	n.Mul(n, new(big.Int).SetUint64(principal))
	d := new(big.Int).SetUint64(ledger.BasisPointsDenominator * ledger.SecondsPerYear)
	return n.Div(n, d)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name                    string
		elapsed, principal, apr uint64
		want                    uint64
	}{
		{"tier 2 full year", ledger.SecondsPerYear, 1_000_000, 30, 300_000},
		{"tier 1 full year", ledger.SecondsPerYear, 1_000_000, 15, 150_000},
		{"tier 4 half year", ledger.SecondsPerYear / 2, 1_000_000, 120, 600_000},
		{"zero elapsed", 0, 1_000_000, 30, 0},
		{"zero principal", 100, 0, 30, 0},
		{"truncates", 1, 1, 15, 0},
		{"one second of large stake", 1, 10_512_000_000, 30, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.elapsed, tt.principal, tt.apr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateWideIntermediate(t *testing.T) {
	// elapsed*apr*principal overflows 64 bits but the quotient does not
	elapsed := 4 * ledger.SecondsPerYear
	principal := uint64(math.MaxUint64 / 1000)
	got, err := Calculate(elapsed, principal, 15)
	require.NoError(t, err)
	assert.Equal(t, reference(elapsed, principal, 15).Uint64(), got)
}

func TestCalculateOverflow(t *testing.T) {
	_, err := Calculate(math.MaxUint64, math.MaxUint64, math.MaxUint64)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)

	_, err = Calculate(100*ledger.SecondsPerYear, math.MaxUint64, 120)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)
}

func TestAccrued(t *testing.T) {
	got, err := Accrued(0, ledger.SecondsPerYear, 1_000_000, 30, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(300_007), got)

	_, err = Accrued(10, 5, 1, 1, 0)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)

	_, err = Accrued(0, ledger.SecondsPerYear, 1_000_000, 30, math.MaxUint64)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)
}

func TestAddSub(t *testing.T) {
	v, err := Add(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v)
	_, err = Add(math.MaxUint64, 1)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)

	v, err = Sub(5, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)
	_, err = Sub(1, 2)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)
}

func TestMatchesReference(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 2000 {
		var elapsed, principal uint64
		var apr uint16
		f.Fuzz(&elapsed)
		f.Fuzz(&principal)
		f.Fuzz(&apr)
		elapsed %= 10 * ledger.SecondsPerYear

		want := reference(elapsed, principal, uint64(apr))
		got, err := Calculate(elapsed, principal, uint64(apr))
		if !want.IsUint64() {
			assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, want.Uint64(), got)
	}
}

func TestMonotonic(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 2000 {
		var elapsed, extra, principal, more uint32
		var apr uint8
		f.Fuzz(&elapsed)
		f.Fuzz(&extra)
		f.Fuzz(&principal)
		f.Fuzz(&more)
		f.Fuzz(&apr)

		base, err := Calculate(uint64(elapsed), uint64(principal), uint64(apr))
		require.NoError(t, err)

		longer, err := Calculate(uint64(elapsed)+uint64(extra), uint64(principal), uint64(apr))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, longer, base, "monotonic in elapsed time")

		bigger, err := Calculate(uint64(elapsed), uint64(principal)+uint64(more), uint64(apr))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, bigger, base, "monotonic in principal")
	}
}
