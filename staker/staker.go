// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/vechain/lockstake/clock"
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/log"
	"github.com/vechain/lockstake/slot"
	"github.com/vechain/lockstake/staker/custody"
	"github.com/vechain/lockstake/staker/globalstats"
	"github.com/vechain/lockstake/staker/position"
	"github.com/vechain/lockstake/staker/reward"
	"github.com/vechain/lockstake/staker/tier"
	"github.com/vechain/lockstake/state"
)

var logger = log.WithContext("pkg", "staker")

// EngineAddress owns the storage of positions, custody and totals.
var EngineAddress = ledger.DeriveAddress([]byte("lockstake"))

// Config holds the engine parameters.
type Config struct {
	Tiers         *tier.Table
	Clock         clock.Clock
	AuthoritySeed []byte
	// SolvencyCheck rejects claims and unstakes up front when custody cannot cover them.
	SolvencyCheck bool
}

// Staker implements the staking operations on top of a state.
type Staker struct {
	state         *state.State
	tiers         *tier.Table
	clock         clock.Clock
	solvencyCheck bool

	positionService    *position.Service
	custodyService     *custody.Service
	globalStatsService *globalstats.Service
}

// New create a new instance.
func New(addr ledger.Address, st *state.State, cfg Config) *Staker {
	sctx := slot.NewContext(addr, st)

	tiers := cfg.Tiers
	if tiers == nil {
		tiers = tier.Default()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}

	return &Staker{
		state:         st,
		tiers:         tiers,
		clock:         clk,
		solvencyCheck: cfg.SolvencyCheck,

		positionService:    position.New(sctx),
		custodyService:     custody.New(sctx, cfg.AuthoritySeed),
		globalStatsService: globalstats.New(sctx),
	}
}

//
// Getters - no state change
//

// Balances of the pooled custody accounts.
type Balances struct {
	Vault   uint64 `json:"vault"`
	Reserve uint64 `json:"reserve"`
}

// Position returns the position of holder.
func (s *Staker) Position(holder ledger.Address) (*position.Position, error) {
	return s.positionService.Get(holder)
}

// Claimable returns the reward holder could claim now.
func (s *Staker) Claimable(holder ledger.Address) (uint64, error) {
	p, err := s.positionService.Get(holder)
	if err != nil {
		return 0, err
	}
	if !p.IsActive() {
		return 0, nil
	}
	return reward.Accrued(p.LastClaimTime, s.clock.Now(), p.StakedAmount, p.AprBps, p.PendingRewards)
}

// Balances returns the Stake Vault and Reward Reserve balances.
func (s *Staker) Balances() (*Balances, error) {
	vault, err := s.custodyService.Balance(custody.VaultAddress)
	if err != nil {
		return nil, err
	}
	reserve, err := s.custodyService.Balance(custody.ReserveAddress)
	if err != nil {
		return nil, err
	}
	return &Balances{Vault: vault, Reserve: reserve}, nil
}

// WalletBalance returns the external balance of holder.
func (s *Staker) WalletBalance(holder ledger.Address) (uint64, error) {
	return s.custodyService.WalletBalance(holder)
}

// SubAccount returns the custody sub-account of holder.
func (s *Staker) SubAccount(holder ledger.Address) (*custody.Account, error) {
	return s.custodyService.Account(custody.SubAccount(holder))
}

// Totals returns the engine-wide counters.
func (s *Staker) Totals() (*globalstats.Totals, error) {
	return s.globalStatsService.Totals()
}

// Tiers returns the lock policy table.
func (s *Staker) Tiers() *tier.Table {
	return s.tiers
}

// Initialized returns whether the custody pools exist.
func (s *Staker) Initialized() (bool, error) {
	return s.custodyService.Initialized()
}

// CheckInvariants verifies that the Stake Vault holds exactly the sum of all principal.
func (s *Staker) CheckInvariants() error {
	staked, err := s.globalStatsService.TotalStaked()
	if err != nil {
		return err
	}
	vault, err := s.custodyService.Balance(custody.VaultAddress)
	if err != nil {
		return err
	}
	if staked != vault {
		return errors.Errorf("vault balance %d does not match total staked %d", vault, staked)
	}
	return nil
}
