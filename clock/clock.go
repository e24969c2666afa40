// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the time source of the staking engine in unix seconds.
package clock

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"

	"github.com/vechain/lockstake/log"
)

var logger = log.WithContext("pkg", "clock")

// Clock returns the current time in unix seconds. Successive calls never go backwards.
type Clock interface {
	Now() uint64
}

// System is the wall clock, clamped to be non-decreasing.
type System struct {
	last atomic.Uint64
}

// NewSystem creates a system clock.
func NewSystem() *System {
	return &System{}
}

func (s *System) Now() uint64 {
	now := uint64(time.Now().Unix())
	for {
		last := s.last.Load()
		if now <= last {
			return last
		}
		if s.last.CompareAndSwap(last, now) {
			return now
		}
	}
}

// Mock is a manually driven clock for tests and replay.
type Mock struct {
	mu  sync.Mutex
	now uint64
}

// NewMock creates a mock clock starting at now.
func NewMock(now uint64) *Mock {
	return &Mock{now: now}
}

func (m *Mock) Now() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to now. Moving backwards is ignored.
func (m *Mock) Set(now uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if now > m.now {
		m.now = now
	}
}

// Advance moves the clock forward by d seconds.
func (m *Mock) Advance(d uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}

// QueryFunc queries a remote time server.
type QueryFunc func(host string) (*ntp.Response, error)

// CheckOffset queries the NTP server and warns when the local clock drifts
// more than maxOffset. It returns the measured offset.
func CheckOffset(query QueryFunc, host string, maxOffset time.Duration) (time.Duration, error) {
	if query == nil {
		query = ntp.Query
	}
	resp, err := query(host)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return 0, err
	}
	offset := resp.ClockOffset
	abs := offset
	if abs < 0 {
		abs = -abs
	}
	if abs > maxOffset {
		logger.Warn("clock offset detected", "offset", offset.String())
	}
	return offset, nil
}
