// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/staker/custody"
	"github.com/vechain/lockstake/staker/position"
	"github.com/vechain/lockstake/staker/reverts"
	"github.com/vechain/lockstake/staker/reward"
)

//
// Setters - state change
//

// atomic runs fn and reverts every mutation it made when it fails.
func (s *Staker) atomic(fn func() (*Event, error)) (*Event, error) {
	cp := s.state.NewCheckpoint()
	ev, err := fn()
	if err != nil {
		s.state.RevertTo(cp)
		return nil, err
	}
	return ev, nil
}

// Initialize opens the Stake Vault and the Reward Reserve. Calling it again is a no-op.
func (s *Staker) Initialize() (*Event, error) {
	logger.Debug("initialize")
	return s.atomic(func() (*Event, error) {
		created, err := s.custodyService.Initialize()
		if err != nil {
			logger.Info("initialize failed", "error", err)
			return nil, err
		}
		if created {
			logger.Info("initialized custody", "vault", custody.VaultAddress, "reserve", custody.ReserveAddress)
		}
		return newEvent(EventInitialize, ledger.Address{}, s.clock.Now()), nil
	})
}

// Stake locks amount of the holder's balance under tier.
// An active position first folds the time accrued at its old rate into pending rewards.
func (s *Staker) Stake(holder ledger.Address, amount uint64, tierSelector uint8) (*Event, error) {
	logger.Debug("stake", "holder", holder, "amount", amount, "tier", tierSelector)

	ev, err := s.atomic(func() (*Event, error) {
		return s.stake(holder, amount, tierSelector)
	})
	if err != nil {
		logger.Info("stake failed", "holder", holder, "error", err)
		return nil, err
	}

	logger.Info("staked",
		"holder", holder,
		"newAmount", ev.StakedAmount,
		"pendingRewards", ev.PendingRewards,
		"startTime", ev.StartTime,
		"apr", ev.AprBps,
		"lockExpiry", ev.LockExpiry,
	)
	return ev, nil
}

func (s *Staker) stake(holder ledger.Address, amount uint64, tierSelector uint8) (*Event, error) {
	if amount == 0 {
		return nil, reverts.ErrNoTokens
	}
	t, err := s.tiers.Lookup(tierSelector)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	p, err := s.positionService.Get(holder)
	if err != nil {
		return nil, err
	}

	opened := !p.IsActive()
	if p.IsActive() {
		pending, err := reward.Accrued(p.LastClaimTime, now, p.StakedAmount, p.AprBps, p.PendingRewards)
		if err != nil {
			return nil, err
		}
		p.PendingRewards = pending
	}
	newAmount, err := reward.Add(p.StakedAmount, amount)
	if err != nil {
		return nil, err
	}
	expiry, err := reward.Add(now, t.Lock)
	if err != nil {
		return nil, err
	}
	if s.solvencyCheck {
		bal, err := s.custodyService.WalletBalance(holder)
		if err != nil {
			return nil, err
		}
		if bal < amount {
			return nil, reverts.Newf(reverts.KindInsufficientBalance, "insufficient balance: have %d, need %d", bal, amount)
		}
	}

	p.AprBps = t.APR
	p.LockExpiry = expiry
	p.StakedStartTime = now
	p.LastClaimTime = now
	p.StakedAmount = newAmount
	p.IsStaked = true

	if _, err := s.custodyService.OpenSubAccount(holder); err != nil {
		return nil, err
	}
	if err := s.custodyService.Deposit(holder, custody.SubAccount(holder), amount); err != nil {
		return nil, err
	}
	if err := s.positionService.Set(holder, p); err != nil {
		return nil, err
	}
	if err := s.globalStatsService.AddStake(amount, opened); err != nil {
		return nil, err
	}

	ev := newEvent(EventStake, holder, now)
	ev.Amount = amount
	ev.Tier = t.Selector
	fillPosition(ev, p)
	return ev, nil
}

// ClaimReward pays the holder everything accrued since the last claim plus pending rewards.
func (s *Staker) ClaimReward(holder ledger.Address) (*Event, error) {
	logger.Debug("claim reward", "holder", holder)

	ev, err := s.atomic(func() (*Event, error) {
		return s.claim(holder)
	})
	if err != nil {
		logger.Info("claim reward failed", "holder", holder, "error", err)
		return nil, err
	}

	logger.Info("claimed reward", "holder", holder, "reward", ev.Reward)
	return ev, nil
}

func (s *Staker) claim(holder ledger.Address) (*Event, error) {
	p, err := s.positionService.Get(holder)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, reverts.ErrNotStaked
	}

	now := s.clock.Now()
	total, err := reward.Accrued(p.LastClaimTime, now, p.StakedAmount, p.AprBps, p.PendingRewards)
	if err != nil {
		return nil, err
	}
	if err := s.checkReserve(total); err != nil {
		return nil, err
	}

	p.LastClaimTime = now
	p.PendingRewards = 0
	if err := s.positionService.Set(holder, p); err != nil {
		return nil, err
	}
	if err := s.payReward(holder, total); err != nil {
		return nil, err
	}

	ev := newEvent(EventClaim, holder, now)
	ev.Reward = total
	fillPosition(ev, p)
	return ev, nil
}

// Unstake releases amount of principal after the lock expired, paying accrued rewards as a claim does.
// Unstaking everything drives the position to its inactive defaults and closes the holder's sub-account.
func (s *Staker) Unstake(holder ledger.Address, amount uint64) (*Event, error) {
	logger.Debug("unstake", "holder", holder, "amount", amount)

	ev, err := s.atomic(func() (*Event, error) {
		return s.unstake(holder, amount)
	})
	if err != nil {
		logger.Info("unstake failed", "holder", holder, "error", err)
		return nil, err
	}

	logger.Info("unstaked", "holder", holder, "reward", ev.Reward, "amountUnstaked", ev.Amount, "closed", ev.Closed)
	return ev, nil
}

func (s *Staker) unstake(holder ledger.Address, amount uint64) (*Event, error) {
	p, err := s.positionService.Get(holder)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, reverts.ErrNotStaked
	}

	now := s.clock.Now()
	if now < p.LockExpiry {
		return nil, reverts.Newf(reverts.KindLocked, "stake is locked until %d", p.LockExpiry)
	}
	if amount == 0 || amount > p.StakedAmount {
		return nil, reverts.Newf(reverts.KindInvalidUnstakeAmount, "invalid unstake amount %d of %d", amount, p.StakedAmount)
	}

	total, err := reward.Accrued(p.LastClaimTime, now, p.StakedAmount, p.AprBps, p.PendingRewards)
	if err != nil {
		return nil, err
	}
	if err := s.checkReserve(total); err != nil {
		return nil, err
	}
	sub := custody.SubAccount(holder)
	if s.solvencyCheck {
		bal, err := s.custodyService.Balance(sub)
		if err != nil {
			return nil, err
		}
		if bal < amount {
			return nil, reverts.Newf(reverts.KindInsufficientVaultBalance, "insufficient vault balance: have %d, need %d", bal, amount)
		}
	}

	p.StakedAmount -= amount
	p.LastClaimTime = now
	p.PendingRewards = 0
	closed := p.StakedAmount == 0
	if closed {
		p.Reset()
	}

	if err := s.positionService.Set(holder, p); err != nil {
		return nil, err
	}
	if err := s.payReward(holder, total); err != nil {
		return nil, err
	}
	if err := s.custodyService.Withdraw(s.custodyService.Authority(sub), sub, holder, amount); err != nil {
		return nil, err
	}
	if closed {
		if err := s.custodyService.CloseSubAccount(holder); err != nil {
			return nil, err
		}
	}
	if err := s.globalStatsService.RemoveStake(amount, closed); err != nil {
		return nil, err
	}

	ev := newEvent(EventUnstake, holder, now)
	ev.Amount = amount
	ev.Reward = total
	ev.Closed = closed
	fillPosition(ev, p)
	return ev, nil
}

// FundReserve moves amount from the funder's balance into the Reward Reserve.
func (s *Staker) FundReserve(funder ledger.Address, amount uint64) (*Event, error) {
	logger.Debug("fund reserve", "funder", funder, "amount", amount)

	ev, err := s.atomic(func() (*Event, error) {
		if amount == 0 {
			return nil, reverts.ErrNoTokens
		}
		if err := s.custodyService.Deposit(funder, custody.ReserveAddress, amount); err != nil {
			return nil, err
		}
		if err := s.globalStatsService.AddReserveFunded(amount); err != nil {
			return nil, err
		}
		ev := newEvent(EventFund, funder, s.clock.Now())
		ev.Amount = amount
		return ev, nil
	})
	if err != nil {
		logger.Info("fund reserve failed", "funder", funder, "error", err)
		return nil, err
	}

	logger.Info("funded reserve", "funder", funder, "amount", amount)
	return ev, nil
}

// Credit mints amount into the holder's balance. It backs the development faucet.
func (s *Staker) Credit(holder ledger.Address, amount uint64) (*Event, error) {
	logger.Debug("credit", "holder", holder, "amount", amount)

	return s.atomic(func() (*Event, error) {
		if amount == 0 {
			return nil, reverts.ErrNoTokens
		}
		if err := s.custodyService.Credit(holder, amount); err != nil {
			logger.Info("credit failed", "holder", holder, "error", err)
			return nil, err
		}
		ev := newEvent(EventCredit, holder, s.clock.Now())
		ev.Amount = amount
		return ev, nil
	})
}

func (s *Staker) checkReserve(total uint64) error {
	if !s.solvencyCheck || total == 0 {
		return nil
	}
	bal, err := s.custodyService.Balance(custody.ReserveAddress)
	if err != nil {
		return err
	}
	if bal < total {
		return reverts.Newf(reverts.KindInsufficientReserve, "insufficient reward reserve: have %d, need %d", bal, total)
	}
	return nil
}

func (s *Staker) payReward(holder ledger.Address, total uint64) error {
	if total == 0 {
		return nil
	}
	auth := s.custodyService.Authority(custody.ReserveAddress)
	if err := s.custodyService.Withdraw(auth, custody.ReserveAddress, holder, total); err != nil {
		return err
	}
	return s.globalStatsService.AddRewardsPaid(total)
}

func fillPosition(ev *Event, p *position.Position) {
	ev.StakedAmount = p.StakedAmount
	ev.PendingRewards = p.PendingRewards
	ev.StartTime = p.StakedStartTime
	ev.AprBps = p.AprBps
	ev.LockExpiry = p.LockExpiry
}
