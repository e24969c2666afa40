// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/vechain/lockstake/journal"
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/staker"
)

type Range struct {
	From *uint64 `json:"from,omitempty"`
	To   *uint64 `json:"to,omitempty"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventFilter struct {
	Holders []ledger.Address   `json:"holders,omitempty"`
	Kinds   []staker.EventKind `json:"kinds,omitempty"`
	Range   *Range             `json:"range,omitempty"`
	Options *Options           `json:"options,omitempty"`
	Order   journal.Order      `json:"order,omitempty"`
}

type FilteredEvent struct {
	*staker.Event
	Revision uint64 `json:"revision"`
	Index    uint32 `json:"index"`
}

func convertFilter(ef *EventFilter) *journal.Filter {
	f := &journal.Filter{
		Holders: ef.Holders,
		Kinds:   ef.Kinds,
		Order:   ef.Order,
	}
	if r := ef.Range; r != nil {
		switch {
		case r.To != nil:
			f.Range = &journal.Range{To: *r.To}
			if r.From != nil {
				f.Range.From = *r.From
			}
		case r.From != nil && *r.From > 0:
			// To below From leaves the range open ended
			f.Range = &journal.Range{From: *r.From}
		}
	}
	if ef.Options != nil {
		f.Options = &journal.Options{Offset: ef.Options.Offset, Limit: ef.Options.Limit}
	}
	return f
}

func convertEntry(e *journal.Entry) *FilteredEvent {
	return &FilteredEvent{
		Event:    e.Event(),
		Revision: e.Revision,
		Index:    e.Index,
	}
}
