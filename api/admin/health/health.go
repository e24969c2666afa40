// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/lockstake/api/utils"
	"github.com/vechain/lockstake/health"
)

// API reports engine health: last commit, invariant state and clock offset.
type API struct {
	status *health.Health
}

func NewAPI(status *health.Health) *API {
	return &API{status: status}
}

// handleGet answers 503 with the same body while the engine is unhealthy,
// so probes need not parse it.
func (h *API) handleGet(w http.ResponseWriter, _ *http.Request) error {
	st, err := h.status.Status()
	if err != nil {
		return err
	}
	if st.Healthy {
		return utils.WriteJSON(w, st)
	}
	w.Header().Set("Content-Type", utils.JSONContentType)
	w.WriteHeader(http.StatusServiceUnavailable)
	return json.NewEncoder(w).Encode(st)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	root.PathPrefix(pathPrefix).Subrouter().
		Path("").
		Methods(http.MethodGet).
		Name("GET /admin/health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGet))
}
