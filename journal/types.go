// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package journal

import (
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/staker"
)

// Entry is a staker event as stored in the journal.
type Entry struct {
	Revision       uint64
	Index          uint32
	Kind           staker.EventKind
	Holder         ledger.Address
	Time           uint64
	Amount         uint64
	Reward         uint64
	StakedAmount   uint64
	PendingRewards uint64
	StartTime      uint64
	AprBps         uint64
	LockExpiry     uint64
	Tier           uint8
	Closed         bool
}

func newEntry(rev uint64, index uint32, ev *staker.Event) *Entry {
	return &Entry{
		Revision:       rev,
		Index:          index,
		Kind:           ev.Kind,
		Holder:         ev.Holder,
		Time:           ev.Time,
		Amount:         ev.Amount,
		Reward:         ev.Reward,
		StakedAmount:   ev.StakedAmount,
		PendingRewards: ev.PendingRewards,
		StartTime:      ev.StartTime,
		AprBps:         ev.AprBps,
		LockExpiry:     ev.LockExpiry,
		Tier:           ev.Tier,
		Closed:         ev.Closed,
	}
}

// Event converts the entry back to the event it was recorded from.
func (e *Entry) Event() *staker.Event {
	return &staker.Event{
		Kind:           e.Kind,
		Holder:         e.Holder,
		Time:           e.Time,
		Amount:         e.Amount,
		Reward:         e.Reward,
		StakedAmount:   e.StakedAmount,
		PendingRewards: e.PendingRewards,
		StartTime:      e.StartTime,
		AprBps:         e.AprBps,
		LockExpiry:     e.LockExpiry,
		Tier:           e.Tier,
		Closed:         e.Closed,
	}
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds the event time, both ends inclusive. To less than From leaves the range open ended.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects journal entries. Empty fields match everything.
type Filter struct {
	Holders []ledger.Address
	Kinds   []staker.EventKind
	Range   *Range
	Options *Options
	Order   Order // default asc
}
