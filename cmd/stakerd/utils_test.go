// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAuthoritySeed(t *testing.T) {
	dir := t.TempDir()

	seed, err := loadAuthoritySeed(dir)
	require.NoError(t, err)
	assert.Len(t, seed, 32)

	again, err := loadAuthoritySeed(dir)
	require.NoError(t, err)
	assert.Equal(t, seed, again, "seed should be stable across restarts")

	require.NoError(t, os.WriteFile(filepath.Join(dir, authoritySeedFile), []byte("not hex"), 0o600))
	_, err = loadAuthoritySeed(dir)
	assert.Error(t, err)
}

func TestRequestBodyLimit(t *testing.T) {
	handler := requestBodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	small := httptest.NewRecorder()
	handler.ServeHTTP(small, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))
	assert.Equal(t, http.StatusOK, small.Code)

	large := httptest.NewRecorder()
	handler.ServeHTTP(large, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 300*1024))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, large.Code)
}

func TestHandleAPITimeout(t *testing.T) {
	handler := handleAPITimeout(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Deadline()
		assert.True(t, ok)
		w.WriteHeader(http.StatusNoContent)
	}), time.Second)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStartServer(t *testing.T) {
	url, stop, err := startServer("localhost:0", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	require.NoError(t, err)
	defer stop()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}
