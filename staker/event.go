// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import "github.com/vechain/lockstake/ledger"

// EventKind names a state changing operation.
type EventKind string

const (
	EventStake      EventKind = "stake"
	EventClaim      EventKind = "claim"
	EventUnstake    EventKind = "unstake"
	EventFund       EventKind = "fund"
	EventCredit     EventKind = "credit"
	EventInitialize EventKind = "initialize"
)

// Event records the outcome of one successful operation.
type Event struct {
	Kind   EventKind      `json:"kind"`
	Holder ledger.Address `json:"holder"`
	Time   uint64         `json:"time"`
	Amount uint64         `json:"amount"` // staked, unstaked, funded or credited
	Reward uint64         `json:"reward"` // paid out of the reserve

	// position after the operation
	StakedAmount   uint64 `json:"stakedAmount"`
	PendingRewards uint64 `json:"pendingRewards"`
	StartTime      uint64 `json:"startTime"`
	AprBps         uint64 `json:"aprBps"`
	LockExpiry     uint64 `json:"lockExpiry"`
	Tier           uint8  `json:"tier"`
	Closed         bool   `json:"closed"` // position went inactive
}

func newEvent(kind EventKind, holder ledger.Address, now uint64) *Event {
	return &Event{Kind: kind, Holder: holder, Time: now}
}
