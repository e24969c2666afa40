// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New(KindNotStaked, "test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)
	assert.Equal(t, KindNotStaked, revert.Kind())

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func TestIsMatchesKind(t *testing.T) {
	err := Newf(KindLocked, "locked until %d", 100)
	assert.ErrorIs(t, err, ErrLocked)
	assert.NotErrorIs(t, err, ErrNotStaked)

	wrapped := errors.Wrap(err, "unstake")
	assert.ErrorIs(t, wrapped, ErrLocked)
	assert.True(t, IsRevertErr(wrapped))
	assert.Equal(t, KindLocked, KindOf(wrapped))
	assert.Equal(t, Kind(0), KindOf(errors.New("other")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "LockedError", KindLocked.String())
	assert.Equal(t, "ArithmeticOverflow", ErrArithmeticOverflow.Kind().String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
