// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lockstake/health"
)

func TestHealthAPI(t *testing.T) {
	h := health.New(time.Second)
	router := mux.NewRouter()
	NewAPI(h).Mount(router, "/admin/health")

	get := func() (int, *health.Status) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/health", nil))
		var status health.Status
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
		return rr.Code, &status
	}

	h.NewCommit(3)
	code, status := get()
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Healthy)
	assert.Equal(t, uint64(3), status.LastCommit.Revision)

	h.InvariantViolated(errors.New("broken"))
	code, status = get()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, status.Healthy)
	assert.Equal(t, "broken", status.Invariant)
}
