// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"github.com/vechain/lockstake/api/utils"
	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/staker/globalstats"
)

// Pools summarizes the pooled custody accounts.
type Pools struct {
	Vault          ledger.Address      `json:"vault"`
	VaultBalance   uint64              `json:"vaultBalance"`
	Reserve        ledger.Address      `json:"reserve"`
	ReserveBalance uint64              `json:"reserveBalance"`
	Totals         *globalstats.Totals `json:"totals"`
	Revision       uint64              `json:"revision"`
}

// Account is the external balance of an address and its vault sub-account.
type Account struct {
	Address    ledger.Address `json:"address"`
	Balance    uint64         `json:"balance"`
	SubAccount ledger.Address `json:"subAccount"`
	Staked     uint64         `json:"staked"`
	Open       bool           `json:"open"`
}

type FundRequest struct {
	Funder ledger.Address `json:"funder"`
	Amount utils.Amount   `json:"amount"`
}

type CreditRequest struct {
	Amount utils.Amount `json:"amount"`
}
