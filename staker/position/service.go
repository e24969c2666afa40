// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"github.com/pkg/errors"

	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/slot"
)

var slotPositions = ledger.BytesToBytes32([]byte(ledger.StakeInfoSeed))

// Service is the registry of positions keyed by holder address.
type Service struct {
	positions *slot.Mapping[ledger.Address, *Position]
}

func New(sctx *slot.Context) *Service {
	return &Service{
		positions: slot.NewMapping[ledger.Address, *Position](sctx, slotPositions),
	}
}

// Get returns the position of holder. A holder that never staked gets the inactive defaults.
func (s *Service) Get(holder ledger.Address) (*Position, error) {
	p, err := s.positions.Get(holder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	return p, nil
}

// Exists returns whether a record was ever created for holder.
func (s *Service) Exists(holder ledger.Address) (bool, error) {
	ok, err := s.positions.Exists(holder)
	if err != nil {
		return false, errors.Wrap(err, "failed to check position")
	}
	return ok, nil
}

// Set stores the position of holder.
func (s *Service) Set(holder ledger.Address, p *Position) error {
	if err := s.positions.Set(holder, p); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}
