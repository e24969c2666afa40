// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

// Position is the staking record of one holder.
type Position struct {
	StakedAmount    uint64 // principal locked, zero while inactive
	StakedStartTime uint64
	LastClaimTime   uint64
	LockExpiry      uint64 // unstake is rejected before it
	AprBps          uint64 // rate of the most recent stake, per BasisPointsDenominator
	PendingRewards  uint64 // accrued under a previous rate, not yet claimed
	IsStaked        bool
}

// IsActive returns whether the position holds principal.
func (p *Position) IsActive() bool {
	return p.IsStaked
}

// IsEmpty returns whether every field is at its inactive default.
func (p *Position) IsEmpty() bool {
	return *p == Position{}
}

// Reset drives the position to the inactive defaults.
func (p *Position) Reset() {
	*p = Position{}
}

// Clone returns a copy of the position.
func (p *Position) Clone() *Position {
	cpy := *p
	return &cpy
}
