// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	noPrefix, err := ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, addr, noPrefix)

	_, err = ParseAddress("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseAddress("1x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.EqualError(t, err, "invalid prefix")

	_, err = ParseAddress("0xz567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)

	assert.Panics(t, func() { MustParseAddress("nope") })
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("holder"))
	data, err := json.Marshal(&addr)
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
	assert.False(t, decoded.IsZero())
	assert.True(t, Address{}.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"0x01"`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`1`), &decoded))
}

func TestBlake2b(t *testing.T) {
	one := Blake2b([]byte("a"), []byte("b"))
	two := Blake2b([]byte("ab"))
	assert.Equal(t, one, two)
	assert.False(t, one.IsZero())
	assert.Len(t, one.Bytes(), 32)
	assert.Contains(t, one.AbbrevString(), "…")
}

func TestDeriveAddress(t *testing.T) {
	holder := BytesToAddress([]byte("holder"))
	a := DeriveAddress(TokenSeed, holder.Bytes())
	b := DeriveAddress(TokenSeed, holder.Bytes())
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, DeriveAddress(StakeInfoSeed, holder.Bytes()))
	assert.NotEqual(t, DeriveAddress(VaultSeed), DeriveAddress(ReserveSeed))
}
