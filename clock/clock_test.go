// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"errors"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemNonDecreasing(t *testing.T) {
	c := NewSystem()
	c.last.Store(uint64(time.Now().Add(time.Hour).Unix()))
	first := c.Now()
	assert.Equal(t, c.last.Load(), first)
	assert.GreaterOrEqual(t, c.Now(), first)
}

func TestMock(t *testing.T) {
	c := NewMock(100)
	assert.Equal(t, uint64(100), c.Now())
	c.Advance(5)
	assert.Equal(t, uint64(105), c.Now())
	c.Set(50)
	assert.Equal(t, uint64(105), c.Now())
	c.Set(200)
	assert.Equal(t, uint64(200), c.Now())
}

func TestCheckOffset(t *testing.T) {
	query := func(offset time.Duration) QueryFunc {
		return func(string) (*ntp.Response, error) {
			return &ntp.Response{ClockOffset: offset}, nil
		}
	}

	got, err := CheckOffset(query(-3*time.Second), "ntp.test", time.Second)
	require.NoError(t, err)
	assert.Equal(t, -3*time.Second, got)

	boom := errors.New("unreachable")
	_, err = CheckOffset(func(string) (*ntp.Response, error) { return nil, boom }, "ntp.test", time.Second)
	assert.ErrorIs(t, err, boom)
}
