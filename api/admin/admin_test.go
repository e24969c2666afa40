// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/lockstake/health"
	"github.com/vechain/lockstake/log"
)

func TestAdminRoutes(t *testing.T) {
	var (
		level   slog.LevelVar
		apiLogs atomic.Bool
	)
	handler := New(&level, health.New(time.Second), &apiLogs)

	for _, path := range []string{"/admin/loglevel", "/admin/health", "/admin/apilogs"} {
		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodPost, "/admin/loglevel", bytes.NewBufferString(`{"level":"warn"}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, log.LevelWarn, level.Level())

	rr = httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/admin/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
