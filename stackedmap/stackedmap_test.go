// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lockstake/stackedmap"
)

func TestStackedMap(t *testing.T) {
	src := map[string]string{"foo": "bar"}
	sm := stackedmap.New(func(key string) (string, bool, error) {
		v, ok := src[key]
		return v, ok, nil
	})

	get := func(key string) string {
		v, _, err := sm.Get(key)
		require.NoError(t, err)
		return v
	}

	tests := []struct {
		f        func()
		depth    int
		putKey   string
		putValue string
		getKey   string
		want     string
	}{
		{func() {}, 1, "", "", "foo", "bar"},
		{func() { sm.Push() }, 2, "foo", "baz", "foo", "baz"},
		{func() {}, 2, "foo", "baz1", "foo", "baz1"},
		{func() { sm.Push() }, 3, "foo", "qux", "foo", "qux"},
		{func() { sm.Pop() }, 2, "", "", "foo", "baz1"},
		{func() { sm.Pop() }, 1, "", "", "foo", "bar"},
		{func() { sm.Push(); sm.Push() }, 3, "", "", "foo", "bar"},
		{func() { sm.PopTo(1) }, 1, "", "", "foo", "bar"},
	}

	for _, test := range tests {
		test.f()
		assert.Equal(t, test.depth, sm.Depth())
		if test.putKey != "" {
			sm.Put(test.putKey, test.putValue)
		}
		assert.Equal(t, test.want, get(test.getKey))
	}
}

func TestStackedMapMiss(t *testing.T) {
	sm := stackedmap.New(func(key int) (int, bool, error) {
		return 0, false, nil
	})
	_, ok, err := sm.Get(1)
	require.NoError(t, err)
	assert.False(t, ok)

	sm.Put(1, 7)
	v, ok, err := sm.Get(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestStackedMapSourceError(t *testing.T) {
	boom := errors.New("boom")
	sm := stackedmap.New(func(key string) (string, bool, error) {
		return "", false, boom
	})
	_, _, err := sm.Get("x")
	assert.ErrorIs(t, err, boom)
}

func TestJournal(t *testing.T) {
	sm := stackedmap.New(func(key string) (string, bool, error) {
		return "", false, nil
	})

	sm.Put("a", "1")
	cp := sm.Push()
	sm.Put("b", "2")
	sm.Put("a", "3")

	type kv struct{ k, v string }
	collect := func() (out []kv) {
		sm.Journal(func(k, v string) bool {
			out = append(out, kv{k, v})
			return true
		})
		return
	}

	assert.Equal(t, []kv{{"a", "1"}, {"b", "2"}, {"a", "3"}}, collect())

	sm.PopTo(cp)
	assert.Equal(t, []kv{{"a", "1"}}, collect())
	v, _, _ := sm.Get("a")
	assert.Equal(t, "1", v)
	_, ok, _ := sm.Get("b")
	assert.False(t, ok)
}
