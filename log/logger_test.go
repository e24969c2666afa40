// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(LegacyLevelCrit))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, LevelTrace, FromLegacyLevel(LegacyLevelTrace))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
}

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))
	l.Info("staked", "amount", uint64(1_000_000), "reward", uint256.NewInt(300_000), "big", big.NewInt(42))

	line := out.String()
	assert.True(t, strings.HasPrefix(line, "INFO "))
	assert.Contains(t, line, "staked")
	assert.Contains(t, line, "amount=1,000,000")
	assert.Contains(t, line, "reward=300,000")
	assert.Contains(t, line, "big=42")
}

func TestTerminalHandlerLevel(t *testing.T) {
	out := new(bytes.Buffer)
	var lvl slog.LevelVar
	lvl.Set(slog.LevelWarn)
	l := NewLogger(NewTerminalHandlerWithLevel(out, &lvl, false))

	l.Info("hidden")
	assert.Empty(t, out.String())

	lvl.Set(slog.LevelDebug)
	l.Debug("shown")
	assert.Contains(t, out.String(), "shown")
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	var lvl slog.LevelVar
	l := NewLogger(JSONHandlerWithLevel(out, &lvl))
	l.Warn("unstake failed", "reward", uint256.NewInt(5))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "unstake failed", rec["msg"])
	assert.Equal(t, "warn", rec["lvl"])
	assert.Equal(t, "5", rec["reward"])
	assert.Contains(t, rec, "t")
}

func TestLogfmtHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(LogfmtHandler(out))
	l.Info("claimed", "holder", "0xab")
	assert.Contains(t, out.String(), "msg=claimed")
	assert.Contains(t, out.String(), "holder=0xab")
}

func TestWithContextFollowsRoot(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	pkgLogger := WithContext("pkg", "test")

	out := new(bytes.Buffer)
	SetDefault(NewLogger(NewTerminalHandler(out, false)))
	pkgLogger.Info("hello", "k", 1)

	assert.Contains(t, out.String(), "pkg=test")
	assert.Contains(t, out.String(), "k=1")
}

func TestNewHandlerFormats(t *testing.T) {
	_, err := ParseFormat("xml")
	assert.Error(t, err)

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTerminal, f)

	var lvl slog.LevelVar
	for _, tc := range []struct {
		name   string
		expect string
	}{
		{"json", `"msg":"funded"`},
		{"LOGFMT", "msg=funded"},
		{"terminal", "INFO "},
	} {
		f, err := ParseFormat(tc.name)
		require.NoError(t, err)

		out := new(bytes.Buffer)
		NewLogger(NewHandler(f, out, &lvl, false)).Info("funded", "amount", uint64(7))
		assert.Contains(t, out.String(), tc.expect, tc.name)
	}
}
