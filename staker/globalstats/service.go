// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/slot"
)

var (
	slotTotalStaked     = ledger.BytesToBytes32([]byte(("total-staked")))
	slotActivePositions = ledger.BytesToBytes32([]byte(("active-positions")))
	slotRewardsPaid     = ledger.BytesToBytes32([]byte(("rewards-paid")))
	slotReserveFunded   = ledger.BytesToBytes32([]byte(("reserve-funded")))
)

// Totals is a snapshot of engine-wide counters.
type Totals struct {
	TotalStaked     uint64 `json:"totalStaked"`
	ActivePositions uint64 `json:"activePositions"`
	RewardsPaid     uint64 `json:"rewardsPaid"`
	ReserveFunded   uint64 `json:"reserveFunded"`
}

// Service manages engine-wide staking totals.
type Service struct {
	totalStaked     *slot.Uint64
	activePositions *slot.Uint64
	rewardsPaid     *slot.Uint64
	reserveFunded   *slot.Uint64
}

func New(sctx *slot.Context) *Service {
	return &Service{
		totalStaked:     slot.NewUint64(sctx, slotTotalStaked),
		activePositions: slot.NewUint64(sctx, slotActivePositions),
		rewardsPaid:     slot.NewUint64(sctx, slotRewardsPaid),
		reserveFunded:   slot.NewUint64(sctx, slotReserveFunded),
	}
}

// AddStake records principal entering the vault. opened is set when the
// position turned active with this stake.
func (s *Service) AddStake(amount uint64, opened bool) error {
	if err := s.totalStaked.Add(amount); err != nil {
		return err
	}
	if opened {
		return s.activePositions.Add(1)
	}
	return nil
}

// RemoveStake records principal leaving the vault. closed is set when the
// position went inactive.
func (s *Service) RemoveStake(amount uint64, closed bool) error {
	if err := s.totalStaked.Sub(amount); err != nil {
		return err
	}
	if closed {
		return s.activePositions.Sub(1)
	}
	return nil
}

// AddRewardsPaid records a payout from the reserve.
func (s *Service) AddRewardsPaid(amount uint64) error {
	return s.rewardsPaid.Add(amount)
}

// AddReserveFunded records funds entering the reserve.
func (s *Service) AddReserveFunded(amount uint64) error {
	return s.reserveFunded.Add(amount)
}

// TotalStaked returns the sum of principal over all positions.
func (s *Service) TotalStaked() (uint64, error) {
	return s.totalStaked.Get()
}

// Totals returns all counters.
func (s *Service) Totals() (*Totals, error) {
	var (
		t   Totals
		err error
	)
	if t.TotalStaked, err = s.totalStaked.Get(); err != nil {
		return nil, err
	}
	if t.ActivePositions, err = s.activePositions.Get(); err != nil {
		return nil, err
	}
	if t.RewardsPaid, err = s.rewardsPaid.Get(); err != nil {
		return nil, err
	}
	if t.ReserveFunded, err = s.reserveFunded.Get(); err != nil {
		return nil, err
	}
	return &t, nil
}
