// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a rejected staking operation.
type Kind uint8

const (
	KindNoTokens Kind = iota + 1
	KindInvalidLockingPeriod
	KindNotStaked
	KindLocked
	KindInvalidUnstakeAmount
	KindArithmeticOverflow
	KindInsufficientReserve
	KindInsufficientVaultBalance
	KindInsufficientBalance
	KindUnauthorized
)

var kindNames = map[Kind]string{
	KindNoTokens:                 "NoTokens",
	KindInvalidLockingPeriod:     "InvalidLockingPeriod",
	KindNotStaked:                "NotStaked",
	KindLocked:                   "LockedError",
	KindInvalidUnstakeAmount:     "InvalidUnstakeAmount",
	KindArithmeticOverflow:       "ArithmeticOverflow",
	KindInsufficientReserve:      "InsufficientReserve",
	KindInsufficientVaultBalance: "InsufficientVaultBalance",
	KindInsufficientBalance:      "InsufficientBalance",
	KindUnauthorized:             "Unauthorized",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Sentinels for errors.Is checks.
var (
	ErrNoTokens                 = New(KindNoTokens, "amount must be greater than zero")
	ErrInvalidLockingPeriod     = New(KindInvalidLockingPeriod, "invalid locking period")
	ErrNotStaked                = New(KindNotStaked, "not staked")
	ErrLocked                   = New(KindLocked, "stake is still locked")
	ErrInvalidUnstakeAmount     = New(KindInvalidUnstakeAmount, "invalid unstake amount")
	ErrArithmeticOverflow       = New(KindArithmeticOverflow, "arithmetic overflow")
	ErrInsufficientReserve      = New(KindInsufficientReserve, "insufficient reward reserve")
	ErrInsufficientVaultBalance = New(KindInsufficientVaultBalance, "insufficient vault balance")
	ErrInsufficientBalance      = New(KindInsufficientBalance, "insufficient balance")
	ErrUnauthorized             = New(KindUnauthorized, "unauthorized")
)

type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

// Newf creates a revert of kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return New(kind, fmt.Sprintf(format, args...))
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Kind returns the kind of the revert.
func (e *ErrRevert) Kind() Kind {
	return e.kind
}

// Is reports whether target is a revert of the same kind.
func (e *ErrRevert) Is(target error) bool {
	var t *ErrRevert
	if !errors.As(target, &t) {
		return false
	}
	return t.kind == e.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert wrapped in err, or zero when err is not a revert.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return 0
}
