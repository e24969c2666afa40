// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/lockstake/api/utils"
	"github.com/vechain/lockstake/staker/tier"
)

type Tier struct {
	Tier   uint8  `json:"tier"`
	AprBps uint64 `json:"aprBps"`
	Lock   uint64 `json:"lock"` // seconds
}

type Tiers struct {
	table *tier.Table
}

func New(table *tier.Table) *Tiers {
	return &Tiers{table}
}

func (t *Tiers) handleGetTiers(w http.ResponseWriter, _ *http.Request) error {
	all := t.table.All()
	resp := make([]Tier, 0, len(all))
	for _, tr := range all {
		resp = append(resp, Tier{Tier: tr.Selector, AprBps: tr.APR, Lock: tr.Lock})
	}
	return utils.WriteJSON(w, resp)
}

func (t *Tiers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /tiers").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetTiers))
}
