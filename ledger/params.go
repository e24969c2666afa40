// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

// Engine wide constants.
const (
	SecondsPerYear         uint64 = 31_536_000
	BasisPointsDenominator uint64 = 100 // rates are expressed in hundredths
)

// Seeds used to derive engine owned accounts.
var (
	VaultSeed     = []byte("vault")
	ReserveSeed   = []byte("reserve")
	StakeInfoSeed = []byte("stake_info")
	TokenSeed     = []byte("token")
)
