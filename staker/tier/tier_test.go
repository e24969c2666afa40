// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/staker/reverts"
)

func TestDefault(t *testing.T) {
	table := Default()

	for sel, want := range map[uint8]Tier{
		1: {1, 15, ledger.SecondsPerYear},
		2: {2, 30, 2 * ledger.SecondsPerYear},
		3: {3, 60, 3 * ledger.SecondsPerYear},
		4: {4, 120, 4 * ledger.SecondsPerYear},
	} {
		got, err := table.Lookup(sel)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// the default table passes its own validation
	_, err := New(table.All())
	assert.NoError(t, err)
}

func TestLookupUnknown(t *testing.T) {
	for _, sel := range []uint8{0, 5, 255} {
		_, err := Default().Lookup(sel)
		assert.ErrorIs(t, err, reverts.ErrInvalidLockingPeriod, "tier %d", sel)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		tiers []Tier
	}{
		{"empty", nil},
		{"gap", []Tier{{1, 10, 100}, {3, 20, 200}}},
		{"starts at zero", []Tier{{0, 10, 100}}},
		{"zero lock", []Tier{{1, 10, 0}}},
		{"flat apr", []Tier{{1, 10, 100}, {2, 10, 200}}},
		{"shorter lock", []Tier{{1, 10, 200}, {2, 20, 100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tiers)
			assert.Error(t, err)
		})
	}
}

func TestParseAndLoad(t *testing.T) {
	doc := []byte(`
tiers:
  - tier: 1
    apr: 5
    lock: 86400
  - {tier: 2, apr: 9, lock: 172800}
`)
	table, err := Parse(doc)
	require.NoError(t, err)
	got, err := table.Lookup(2)
	require.NoError(t, err)
	assert.Equal(t, Tier{2, 9, 172800}, got)

	path := filepath.Join(t.TempDir(), "tiers.yaml")
	data, err := Default().Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().All(), loaded.All())

	_, err = Parse([]byte("tiers: [\"x\"]"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
