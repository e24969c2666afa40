// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"github.com/pkg/errors"

	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/slot"
	"github.com/vechain/lockstake/staker/reverts"
)

var (
	slotAccounts = ledger.BytesToBytes32([]byte(("custody-accounts")))
	slotWallets  = ledger.BytesToBytes32([]byte(("wallets")))
)

// Gateway moves value between holder wallets and custody accounts.
type Gateway interface {
	// Deposit moves amount from the wallet of from into the custody account.
	Deposit(from, account ledger.Address, amount uint64) error
	// Withdraw moves amount out of the custody account into the wallet of to.
	Withdraw(auth *Authority, account, to ledger.Address, amount uint64) error
}

var _ Gateway = (*Service)(nil)

// Service keeps custody accounts and holder wallets in state.
type Service struct {
	accounts *slot.Mapping[ledger.Address, *Account]
	wallets  *slot.Mapping[ledger.Address, uint64]
	seed     []byte
}

// New creates the custody service. seed is the secret authorities are checked against.
func New(sctx *slot.Context, seed []byte) *Service {
	return &Service{
		accounts: slot.NewMapping[ledger.Address, *Account](sctx, slotAccounts),
		wallets:  slot.NewMapping[ledger.Address, uint64](sctx, slotWallets),
		seed:     append([]byte(nil), seed...),
	}
}

// Initialize opens the Stake Vault and the Reward Reserve. It reports whether anything was created.
func (s *Service) Initialize() (bool, error) {
	vault, err := s.open(VaultAddress, ledger.Address{}, ledger.Address{})
	if err != nil {
		return false, err
	}
	reserve, err := s.open(ReserveAddress, ledger.Address{}, ledger.Address{})
	if err != nil {
		return false, err
	}
	return vault || reserve, nil
}

// Initialized returns whether both pools exist.
func (s *Service) Initialized() (bool, error) {
	for _, addr := range []ledger.Address{VaultAddress, ReserveAddress} {
		acc, err := s.Account(addr)
		if err != nil {
			return false, err
		}
		if !acc.Open {
			return false, nil
		}
	}
	return true, nil
}

// OpenSubAccount opens the holder's sub-account in the Stake Vault if missing.
func (s *Service) OpenSubAccount(holder ledger.Address) (bool, error) {
	return s.open(SubAccount(holder), holder, VaultAddress)
}

// CloseSubAccount closes the holder's sub-account. It must be empty.
func (s *Service) CloseSubAccount(holder ledger.Address) error {
	addr := SubAccount(holder)
	acc, err := s.Account(addr)
	if err != nil {
		return err
	}
	if !acc.Open {
		return errors.Errorf("custody: sub-account %v not open", addr)
	}
	if acc.Balance != 0 {
		return errors.Errorf("custody: sub-account %v not empty", addr)
	}
	s.accounts.Delete(addr)
	return nil
}

// Authority derives the withdrawal capability over account. Only the engine calls it.
func (s *Service) Authority(account ledger.Address) *Authority {
	return NewAuthority(s.seed, account)
}

// Account returns the custody account at addr; a missing account is returned closed.
func (s *Service) Account(addr ledger.Address) (*Account, error) {
	acc, err := s.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get custody account")
	}
	return acc, nil
}

// Balance returns the balance of the custody account at addr.
func (s *Service) Balance(addr ledger.Address) (uint64, error) {
	acc, err := s.Account(addr)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// WalletBalance returns the external balance of holder.
func (s *Service) WalletBalance(holder ledger.Address) (uint64, error) {
	bal, err := s.wallets.Get(holder)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get wallet")
	}
	return bal, nil
}

// Credit mints amount into the wallet of holder.
func (s *Service) Credit(holder ledger.Address, amount uint64) error {
	return s.creditWallet(holder, amount)
}

func (s *Service) Deposit(from, account ledger.Address, amount uint64) error {
	acc, err := s.openAccount(account)
	if err != nil {
		return err
	}
	bal, err := s.WalletBalance(from)
	if err != nil {
		return err
	}
	if bal < amount {
		return reverts.Newf(reverts.KindInsufficientBalance, "insufficient balance: have %d, need %d", bal, amount)
	}
	if acc.Balance+amount < acc.Balance {
		return reverts.ErrArithmeticOverflow
	}
	if acc.IsSubAccount() {
		if err := s.adjust(acc.Parent, amount, true); err != nil {
			return err
		}
	}
	acc.Balance += amount
	if err := s.accounts.Set(account, acc); err != nil {
		return errors.Wrap(err, "failed to set custody account")
	}
	return s.setWallet(from, bal-amount)
}

func (s *Service) Withdraw(auth *Authority, account, to ledger.Address, amount uint64) error {
	if auth == nil || auth.account != account || auth.id != NewAuthority(s.seed, account).id {
		return reverts.Newf(reverts.KindUnauthorized, "unauthorized withdrawal from %v", account)
	}
	acc, err := s.openAccount(account)
	if err != nil {
		return err
	}
	if acc.Balance < amount {
		return insufficient(account, acc.Balance, amount)
	}
	if acc.IsSubAccount() {
		if err := s.adjust(acc.Parent, amount, false); err != nil {
			return err
		}
	}
	acc.Balance -= amount
	if err := s.accounts.Set(account, acc); err != nil {
		return errors.Wrap(err, "failed to set custody account")
	}
	return s.creditWallet(to, amount)
}

func insufficient(account ledger.Address, have, need uint64) error {
	if account == ReserveAddress {
		return reverts.Newf(reverts.KindInsufficientReserve, "insufficient reward reserve: have %d, need %d", have, need)
	}
	return reverts.Newf(reverts.KindInsufficientVaultBalance, "insufficient vault balance: have %d, need %d", have, need)
}

func (s *Service) open(addr, owner, parent ledger.Address) (bool, error) {
	acc, err := s.Account(addr)
	if err != nil {
		return false, err
	}
	if acc.Open {
		return false, nil
	}
	if err := s.accounts.Set(addr, &Account{Owner: owner, Parent: parent, Open: true}); err != nil {
		return false, errors.Wrap(err, "failed to open custody account")
	}
	return true, nil
}

func (s *Service) openAccount(addr ledger.Address) (*Account, error) {
	acc, err := s.Account(addr)
	if err != nil {
		return nil, err
	}
	if !acc.Open {
		return nil, errors.Errorf("custody: account %v not open", addr)
	}
	return acc, nil
}

// adjust moves the balance of a pool in step with one of its sub-accounts.
func (s *Service) adjust(pool ledger.Address, amount uint64, increase bool) error {
	acc, err := s.openAccount(pool)
	if err != nil {
		return err
	}
	if increase {
		if acc.Balance+amount < acc.Balance {
			return reverts.ErrArithmeticOverflow
		}
		acc.Balance += amount
	} else {
		if acc.Balance < amount {
			return insufficient(pool, acc.Balance, amount)
		}
		acc.Balance -= amount
	}
	if err := s.accounts.Set(pool, acc); err != nil {
		return errors.Wrap(err, "failed to set custody account")
	}
	return nil
}

func (s *Service) creditWallet(holder ledger.Address, amount uint64) error {
	bal, err := s.WalletBalance(holder)
	if err != nil {
		return err
	}
	if bal+amount < bal {
		return reverts.ErrArithmeticOverflow
	}
	return s.setWallet(holder, bal+amount)
}

func (s *Service) setWallet(holder ledger.Address, bal uint64) error {
	if bal == 0 {
		s.wallets.Delete(holder)
		return nil
	}
	if err := s.wallets.Set(holder, bal); err != nil {
		return errors.Wrap(err, "failed to set wallet")
	}
	return nil
}
