// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/lockstake/api/utils"
	"github.com/vechain/lockstake/runtime"
	"github.com/vechain/lockstake/staker"
	"github.com/vechain/lockstake/staker/custody"
)

type Custody struct {
	rt     *runtime.Runtime
	faucet bool
}

// New creates the custody API. faucet enables minting through the credit endpoint.
func New(rt *runtime.Runtime, faucet bool) *Custody {
	return &Custody{
		rt,
		faucet,
	}
}

func (c *Custody) handleGetPools(w http.ResponseWriter, req *http.Request) error {
	pools := &Pools{
		Vault:   custody.VaultAddress,
		Reserve: custody.ReserveAddress,
	}
	err := c.rt.View(req.Context(), func(s *staker.Staker) error {
		b, err := s.Balances()
		if err != nil {
			return err
		}
		totals, err := s.Totals()
		if err != nil {
			return err
		}
		pools.VaultBalance = b.Vault
		pools.ReserveBalance = b.Reserve
		pools.Totals = totals
		return nil
	})
	if err != nil {
		return err
	}
	pools.Revision = c.rt.Revision()
	return utils.WriteJSON(w, pools)
}

func (c *Custody) handleFundReserve(w http.ResponseWriter, req *http.Request) error {
	var body FundRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	ev, err := c.rt.FundReserve(req.Context(), body.Funder, uint64(body.Amount))
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, ev)
}

func (c *Custody) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	acc := &Account{
		Address:    addr,
		SubAccount: custody.SubAccount(addr),
	}
	err = c.rt.View(req.Context(), func(s *staker.Staker) error {
		bal, err := s.WalletBalance(addr)
		if err != nil {
			return err
		}
		sub, err := s.SubAccount(addr)
		if err != nil {
			return err
		}
		acc.Balance = bal
		acc.Staked = sub.Balance
		acc.Open = sub.Open
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (c *Custody) handleCredit(w http.ResponseWriter, req *http.Request) error {
	if !c.faucet {
		return utils.Forbidden(errors.New("faucet disabled"))
	}
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body CreditRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	ev, err := c.rt.Credit(req.Context(), addr, uint64(body.Amount))
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, ev)
}

func (c *Custody) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /custody").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetPools))
	sub.Path("/reserve").
		Methods(http.MethodPost).
		Name("POST /custody/reserve").
		HandlerFunc(utils.WrapHandlerFunc(c.handleFundReserve))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /custody/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetAccount))
	sub.Path("/accounts/{address}/credit").
		Methods(http.MethodPost).
		Name("POST /custody/accounts/{address}/credit").
		HandlerFunc(utils.WrapHandlerFunc(c.handleCredit))
}
