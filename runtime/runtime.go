// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime hosts the staking engine on a persistent store. It runs
// every state changing operation in isolation, commits its net effect in one
// write and records the resulting event in the journal.
package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/lockstake/clock"
	"github.com/vechain/lockstake/health"
	"github.com/vechain/lockstake/journal"
	"github.com/vechain/lockstake/kv"
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/log"
	"github.com/vechain/lockstake/staker"
	"github.com/vechain/lockstake/staker/tier"
	"github.com/vechain/lockstake/state"
)

var logger = log.WithContext("pkg", "runtime")

// ErrNoJournal is returned by history queries when the runtime has no journal.
var ErrNoJournal = errors.New("journal disabled")

// Options configures a Runtime.
type Options struct {
	SolvencyCheck bool   // reject payouts the reserve cannot cover before mutating
	CacheSize     int    // slot cache entries, zero for the default
	AuthoritySeed []byte // seed of the custody withdrawal capability
	Health        *health.Health
}

// Runtime serializes state changing operations over a shared store.
type Runtime struct {
	stater  *state.Stater
	journal *journal.Journal
	clock   clock.Clock
	tiers   *tier.Table
	opts    Options

	mu sync.Mutex // held by writers
}

// New creates a runtime over store. jnl may be nil to disable history.
func New(store kv.Store, jnl *journal.Journal, clk clock.Clock, tiers *tier.Table, opts Options) (*Runtime, error) {
	stater, err := state.NewStater(store, opts.CacheSize)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	if tiers == nil {
		tiers = tier.Default()
	}
	return &Runtime{
		stater:  stater,
		journal: jnl,
		clock:   clk,
		tiers:   tiers,
		opts:    opts,
	}, nil
}

func (r *Runtime) newStaker(st *state.State) *staker.Staker {
	return staker.New(staker.EngineAddress, st, staker.Config{
		Tiers:         r.tiers,
		Clock:         r.clock,
		AuthoritySeed: r.opts.AuthoritySeed,
		SolvencyCheck: r.opts.SolvencyCheck,
	})
}

// Tiers returns the lock policy table.
func (r *Runtime) Tiers() *tier.Table {
	return r.tiers
}

// Revision returns the latest committed state revision.
func (r *Runtime) Revision() uint64 {
	return r.stater.Revision()
}

// Now returns the engine time.
func (r *Runtime) Now() uint64 {
	return r.clock.Now()
}

// View runs fn against the latest committed state. Mutations made by fn are discarded.
func (r *Runtime) View(ctx context.Context, fn func(*staker.Staker) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st := r.stater.NewState()
	defer st.Release()
	return fn(r.newStaker(st))
}

// Exec runs fn as a single operation. Either all of its effects are committed
// and its event journaled, or none are.
func (r *Runtime) Exec(ctx context.Context, op string, fn func(*staker.Staker) (*staker.Event, error)) (*staker.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	ev, err := r.exec(fn)
	observeOp(op, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *Runtime) exec(fn func(*staker.Staker) (*staker.Event, error)) (*staker.Event, error) {
	st := r.stater.NewState()
	defer st.Release()

	s := r.newStaker(st)
	ev, err := fn(s)
	if err != nil {
		return nil, err
	}
	if err := s.CheckInvariants(); err != nil {
		logger.Error("invariant violated, discarding operation", "kind", ev.Kind, "error", err)
		if r.opts.Health != nil {
			r.opts.Health.InvariantViolated(err)
		}
		return nil, err
	}

	stage := st.Stage()
	rev, err := stage.Commit()
	if err != nil {
		return nil, errors.Wrap(err, "commit state")
	}
	if rev == st.Revision() {
		// nothing changed
		return ev, nil
	}
	logger.Trace("state committed", "revision", rev, "slots", stage.Len())
	r.report(s)
	if r.opts.Health != nil {
		r.opts.Health.NewCommit(rev)
	}

	if r.journal != nil {
		if err := r.journal.Prepare(rev).Add(ev).Commit(); err != nil {
			// state is authoritative, the event is only history
			logger.Warn("failed to journal event", "revision", rev, "kind", ev.Kind, "error", err)
		}
	}
	return ev, nil
}

// report refreshes the custody gauges from the state just committed.
func (r *Runtime) report(s *staker.Staker) {
	b, err := s.Balances()
	if err != nil {
		logger.Debug("failed to read balances", "error", err)
		return
	}
	totals, err := s.Totals()
	if err != nil {
		logger.Debug("failed to read totals", "error", err)
		return
	}
	observeBalances(b, totals)
	observeCache(r.stater.CacheStats())
}

// Initialize opens the custody pools if needed.
func (r *Runtime) Initialize(ctx context.Context) (*staker.Event, error) {
	return r.Exec(ctx, "initialize", func(s *staker.Staker) (*staker.Event, error) {
		return s.Initialize()
	})
}

// Stake locks amount of holder's balance under tierSelector.
func (r *Runtime) Stake(ctx context.Context, holder ledger.Address, amount uint64, tierSelector uint8) (*staker.Event, error) {
	return r.Exec(ctx, "stake", func(s *staker.Staker) (*staker.Event, error) {
		return s.Stake(holder, amount, tierSelector)
	})
}

// ClaimReward pays holder the accrued reward.
func (r *Runtime) ClaimReward(ctx context.Context, holder ledger.Address) (*staker.Event, error) {
	return r.Exec(ctx, "claim", func(s *staker.Staker) (*staker.Event, error) {
		return s.ClaimReward(holder)
	})
}

// Unstake releases amount of holder's principal.
func (r *Runtime) Unstake(ctx context.Context, holder ledger.Address, amount uint64) (*staker.Event, error) {
	return r.Exec(ctx, "unstake", func(s *staker.Staker) (*staker.Event, error) {
		return s.Unstake(holder, amount)
	})
}

// FundReserve moves amount of funder's balance into the reward reserve.
func (r *Runtime) FundReserve(ctx context.Context, funder ledger.Address, amount uint64) (*staker.Event, error) {
	return r.Exec(ctx, "fund", func(s *staker.Staker) (*staker.Event, error) {
		return s.FundReserve(funder, amount)
	})
}

// Credit mints amount into holder's balance.
func (r *Runtime) Credit(ctx context.Context, holder ledger.Address, amount uint64) (*staker.Event, error) {
	return r.Exec(ctx, "credit", func(s *staker.Staker) (*staker.Event, error) {
		return s.Credit(holder, amount)
	})
}

// Events queries the journal.
func (r *Runtime) Events(ctx context.Context, filter *journal.Filter) ([]*journal.Entry, error) {
	if r.journal == nil {
		return nil, ErrNoJournal
	}
	return r.journal.Filter(ctx, filter)
}
