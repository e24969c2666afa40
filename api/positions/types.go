// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"github.com/vechain/lockstake/api/utils"
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/staker/position"
)

type Position struct {
	Holder          ledger.Address `json:"holder"`
	StakedAmount    uint64         `json:"stakedAmount"`
	StakedStartTime uint64         `json:"stakedStartTime"`
	LastClaimTime   uint64         `json:"lastClaimTime"`
	LockExpiry      uint64         `json:"lockExpiry"`
	AprBps          uint64         `json:"aprBps"`
	PendingRewards  uint64         `json:"pendingRewards"`
	IsStaked        bool           `json:"isStaked"`
	Claimable       uint64         `json:"claimable"` // reward claimable at Now
	Now             uint64         `json:"now"`
}

func convertPosition(holder ledger.Address, p *position.Position, claimable, now uint64) *Position {
	return &Position{
		Holder:          holder,
		StakedAmount:    p.StakedAmount,
		StakedStartTime: p.StakedStartTime,
		LastClaimTime:   p.LastClaimTime,
		LockExpiry:      p.LockExpiry,
		AprBps:          p.AprBps,
		PendingRewards:  p.PendingRewards,
		IsStaked:        p.IsStaked,
		Claimable:       claimable,
		Now:             now,
	}
}

type StakeRequest struct {
	Amount utils.Amount `json:"amount"`
	Tier   uint8        `json:"tier"`
}

type UnstakeRequest struct {
	Amount utils.Amount `json:"amount"`
}
