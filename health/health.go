// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

type Commit struct {
	Revision  uint64     `json:"revision"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy     bool    `json:"healthy"`
	LastCommit  *Commit `json:"lastCommit"`
	ClockOffset string  `json:"clockOffset"`
	Invariant   string  `json:"invariant,omitempty"` // last invariant violation
}

// Health tracks the signals an operator needs to trust the engine:
// commits going through, the custody invariant holding and the clock staying in sync.
type Health struct {
	lock         sync.RWMutex
	maxOffset    time.Duration
	lastCommit   time.Time
	revision     uint64
	clockOffset  time.Duration
	invariantErr error
}

// New creates a Health tolerating a clock offset up to maxOffset.
func New(maxOffset time.Duration) *Health {
	return &Health{maxOffset: maxOffset}
}

func (h *Health) NewCommit(revision uint64) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastCommit = time.Now()
	h.revision = revision
}

// InvariantViolated records an operation discarded for breaking the custody invariant.
func (h *Health) InvariantViolated(err error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.invariantErr = err
}

func (h *Health) ClockOffset(offset time.Duration) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.clockOffset = offset
}

func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	offset := h.clockOffset
	if offset < 0 {
		offset = -offset
	}
	status := &Status{
		Healthy:     h.invariantErr == nil && (h.maxOffset == 0 || offset <= h.maxOffset),
		ClockOffset: h.clockOffset.String(),
	}
	if !h.lastCommit.IsZero() {
		ts := h.lastCommit
		status.LastCommit = &Commit{Revision: h.revision, Timestamp: &ts}
	}
	if h.invariantErr != nil {
		status.Invariant = h.invariantErr.Error()
	}
	return status, nil
}
