// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lockstake/staker/reverts"
)

func serve(f HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	WrapHandlerFunc(f)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestWrapHandlerFunc(t *testing.T) {
	rec := serve(func(w http.ResponseWriter, _ *http.Request) error {
		return WriteJSON(w, M{"ok": true})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))

	rec = serve(func(http.ResponseWriter, *http.Request) error {
		return BadRequest(errors.New("bad"))
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad\n", rec.Body.String())

	rec = serve(func(http.ResponseWriter, *http.Request) error {
		return HTTPError(nil, http.StatusNotFound)
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(func(http.ResponseWriter, *http.Request) error {
		return errors.Wrap(reverts.ErrLocked, "unstake")
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"LockedError"`)

	rec = serve(func(http.ResponseWriter, *http.Request) error {
		return errors.New("disk on fire")
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		Amount Amount `json:"amount"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"amount":"0x10"}`), &v))
	assert.Equal(t, uint64(16), uint64(v.Amount))
	require.NoError(t, ParseJSON(strings.NewReader(`{"amount":"1000000"}`), &v))
	assert.Equal(t, uint64(1_000_000), uint64(v.Amount))

	assert.Error(t, ParseJSON(strings.NewReader(`{"amount":"1","extra":1}`), &v))
}

func TestAddressVar(t *testing.T) {
	router := mux.NewRouter()
	router.Path("/{address}").HandlerFunc(WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		addr, err := AddressVar(r, "address")
		if err != nil {
			return err
		}
		return WriteJSON(w, addr)
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/0x0000000000000000000000000000000000000001", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "address")
}
