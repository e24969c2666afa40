// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward computes time-accrued staking rewards.
package reward

import (
	"github.com/holiman/uint256"

	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/staker/reverts"
)

// denominator is BasisPointsDenominator * SecondsPerYear.
var denominator = new(uint256.Int).Mul(
	uint256.NewInt(ledger.BasisPointsDenominator),
	uint256.NewInt(ledger.SecondsPerYear),
)

// Calculate returns floor(elapsed * apr * principal / (BasisPointsDenominator * SecondsPerYear)).
// The product is taken in 256 bits and divided once. A result beyond uint64
// yields ErrArithmeticOverflow.
func Calculate(elapsed, principal, apr uint64) (uint64, error) {
	if elapsed == 0 || principal == 0 || apr == 0 {
		return 0, nil
	}
	product, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(elapsed), uint256.NewInt(apr))
	if overflow {
		return 0, reverts.ErrArithmeticOverflow
	}
	if _, overflow = product.MulOverflow(product, uint256.NewInt(principal)); overflow {
		return 0, reverts.ErrArithmeticOverflow
	}
	result := product.Div(product, denominator)
	if !result.IsUint64() {
		return 0, reverts.Newf(reverts.KindArithmeticOverflow, "reward %s exceeds uint64", result.Dec())
	}
	return result.Uint64(), nil
}

// Accrued returns the reward for the interval [from, to) plus carried pending rewards.
func Accrued(from, to, principal, apr, pending uint64) (uint64, error) {
	if to < from {
		return 0, reverts.Newf(reverts.KindArithmeticOverflow, "clock went backwards: %d < %d", to, from)
	}
	earned, err := Calculate(to-from, principal, apr)
	if err != nil {
		return 0, err
	}
	return Add(earned, pending)
}

// Add returns a + b, or ErrArithmeticOverflow.
func Add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, reverts.ErrArithmeticOverflow
	}
	return sum, nil
}

// Sub returns a - b, or ErrArithmeticOverflow when b > a.
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, reverts.ErrArithmeticOverflow
	}
	return a - b, nil
}
