// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/lockstake/api/utils"
	"github.com/vechain/lockstake/runtime"
	"github.com/vechain/lockstake/staker"
)

type Positions struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Positions {
	return &Positions{rt}
}

func (p *Positions) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	holder, err := utils.AddressVar(req, "holder")
	if err != nil {
		return err
	}

	var pos *Position
	err = p.rt.View(req.Context(), func(s *staker.Staker) error {
		now := p.rt.Now()
		record, err := s.Position(holder)
		if err != nil {
			return err
		}
		claimable, err := s.Claimable(holder)
		if err != nil {
			return err
		}
		pos = convertPosition(holder, record, claimable, now)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, pos)
}

func (p *Positions) handleStake(w http.ResponseWriter, req *http.Request) error {
	holder, err := utils.AddressVar(req, "holder")
	if err != nil {
		return err
	}
	var body StakeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	ev, err := p.rt.Stake(req.Context(), holder, uint64(body.Amount), body.Tier)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, ev)
}

func (p *Positions) handleClaim(w http.ResponseWriter, req *http.Request) error {
	holder, err := utils.AddressVar(req, "holder")
	if err != nil {
		return err
	}
	ev, err := p.rt.ClaimReward(req.Context(), holder)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, ev)
}

func (p *Positions) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	holder, err := utils.AddressVar(req, "holder")
	if err != nil {
		return err
	}
	var body UnstakeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	ev, err := p.rt.Unstake(req.Context(), holder, uint64(body.Amount))
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, ev)
}

func (p *Positions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{holder}").
		Methods(http.MethodGet).
		Name("GET /positions/{holder}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPosition))
	sub.Path("/{holder}/stake").
		Methods(http.MethodPost).
		Name("POST /positions/{holder}/stake").
		HandlerFunc(utils.WrapHandlerFunc(p.handleStake))
	sub.Path("/{holder}/claim").
		Methods(http.MethodPost).
		Name("POST /positions/{holder}/claim").
		HandlerFunc(utils.WrapHandlerFunc(p.handleClaim))
	sub.Path("/{holder}/unstake").
		Methods(http.MethodPost).
		Name("POST /positions/{holder}/unstake").
		HandlerFunc(utils.WrapHandlerFunc(p.handleUnstake))
}
