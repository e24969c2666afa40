// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"github.com/vechain/lockstake/ledger"
)

var (
	// VaultAddress is the Stake Vault holding all principal.
	VaultAddress = ledger.DeriveAddress(ledger.VaultSeed)
	// ReserveAddress is the Reward Reserve paying out rewards.
	ReserveAddress = ledger.DeriveAddress(ledger.ReserveSeed)
)

// SubAccount returns the address of the holder's principal sub-account inside the Stake Vault.
func SubAccount(holder ledger.Address) ledger.Address {
	return ledger.DeriveAddress(ledger.TokenSeed, holder.Bytes())
}

// Account is a custody account. Sub-accounts roll their balance up into Parent.
type Account struct {
	Owner   ledger.Address // holder of a sub-account, zero for pools
	Parent  ledger.Address // zero for pools
	Balance uint64
	Open    bool
}

// IsSubAccount returns whether the account rolls up into a pool.
func (a *Account) IsSubAccount() bool {
	return !a.Parent.IsZero()
}

// Authority is the capability to move funds out of one custody account.
// It is derived from a seed and the account identity, and only the engine
// holding the seed can derive a valid one.
type Authority struct {
	account ledger.Address
	id      ledger.Address
}

// NewAuthority derives the authority over account from seed.
func NewAuthority(seed []byte, account ledger.Address) *Authority {
	return &Authority{
		account: account,
		id:      ledger.DeriveAddress(seed, account.Bytes()),
	}
}

// Account returns the account the authority controls.
func (a *Authority) Account() ledger.Address {
	return a.account
}

func (a *Authority) String() string {
	return "authority(" + a.account.String() + ")"
}
