// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/lockstake/api/utils"
	"github.com/vechain/lockstake/journal"
	"github.com/vechain/lockstake/runtime"
	"github.com/vechain/lockstake/staker"
)

var kinds = map[staker.EventKind]bool{
	staker.EventStake:      true,
	staker.EventClaim:      true,
	staker.EventUnstake:    true,
	staker.EventFund:       true,
	staker.EventCredit:     true,
	staker.EventInitialize: true,
}

type Events struct {
	rt    *runtime.Runtime
	limit uint64
}

func New(rt *runtime.Runtime, limit uint64) *Events {
	return &Events{
		rt,
		limit,
	}
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter EventFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if filter.Options != nil && filter.Options.Limit > e.limit {
		return utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
	}
	if filter.Options != nil && filter.Options.Offset > math.MaxInt64 {
		return utils.BadRequest(fmt.Errorf("options.offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	if filter.Range != nil && filter.Range.From != nil && filter.Range.To != nil && *filter.Range.From > *filter.Range.To {
		return utils.BadRequest(errors.New("range.to must be greater than or equal to range.from"))
	}
	for i, k := range filter.Kinds {
		if !kinds[k] {
			return utils.BadRequest(fmt.Errorf("kinds[%d]: unknown kind %q", i, k))
		}
	}
	if filter.Order != "" && filter.Order != journal.ASC && filter.Order != journal.DESC {
		return utils.BadRequest(fmt.Errorf("order: unknown order %q", filter.Order))
	}
	if filter.Options == nil {
		// one above the limit to detect an oversized result
		filter.Options = &Options{Limit: e.limit + 1}
	}

	entries, err := e.rt.Events(req.Context(), convertFilter(&filter))
	if err != nil {
		if errors.Is(err, runtime.ErrNoJournal) {
			return utils.HTTPError(err, http.StatusNotImplemented)
		}
		return err
	}
	if len(entries) > int(e.limit) {
		return utils.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}

	fes := make([]*FilteredEvent, len(entries))
	for i, entry := range entries {
		fes[i] = convertEntry(entry)
	}
	return utils.WriteJSON(w, fes)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
