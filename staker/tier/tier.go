// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tier holds the lock policy table: which rate and lock duration each
// tier selector grants.
package tier

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/staker/reverts"
)

// Tier is one row of the lock policy table.
type Tier struct {
	Selector uint8  `yaml:"tier" json:"tier"`
	APR      uint64 `yaml:"apr" json:"apr"`   // per BasisPointsDenominator
	Lock     uint64 `yaml:"lock" json:"lock"` // seconds
}

// Table is a validated, immutable lock policy table.
type Table struct {
	tiers []Tier
}

// Default returns the built-in table: 15/30/60/120 per 100 for 1 to 4 years.
func Default() *Table {
	year := ledger.SecondsPerYear
	return &Table{tiers: []Tier{
		{Selector: 1, APR: 15, Lock: year},
		{Selector: 2, APR: 30, Lock: 2 * year},
		{Selector: 3, APR: 60, Lock: 3 * year},
		{Selector: 4, APR: 120, Lock: 4 * year},
	}}
}

// New validates tiers and builds a table.
// Selectors must be contiguous from 1; rate and lock must strictly increase with the selector.
func New(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, errors.New("empty tier table")
	}
	if len(tiers) > 255 {
		return nil, errors.New("too many tiers")
	}
	for i, t := range tiers {
		if int(t.Selector) != i+1 {
			return nil, errors.Errorf("tier #%d: selector %d, want %d", i, t.Selector, i+1)
		}
		if t.Lock == 0 {
			return nil, errors.Errorf("tier %d: zero lock duration", t.Selector)
		}
		if i > 0 {
			prev := tiers[i-1]
			if t.APR <= prev.APR {
				return nil, errors.Errorf("tier %d: apr %d not above tier %d", t.Selector, t.APR, prev.Selector)
			}
			if t.Lock <= prev.Lock {
				return nil, errors.Errorf("tier %d: lock %d not above tier %d", t.Selector, t.Lock, prev.Selector)
			}
		}
	}
	return &Table{tiers: append([]Tier(nil), tiers...)}, nil
}

type file struct {
	Tiers []Tier `yaml:"tiers"`
}

// Parse decodes a YAML policy document.
//
//	tiers:
//	  - {tier: 1, apr: 15, lock: 31536000}
func Parse(data []byte) (*Table, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode tier table")
	}
	return New(f.Tiers)
}

// Load reads and parses the YAML policy file at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read tier table")
	}
	return Parse(data)
}

// Lookup returns the tier for selector, or ErrInvalidLockingPeriod.
func (t *Table) Lookup(selector uint8) (Tier, error) {
	if selector == 0 || int(selector) > len(t.tiers) {
		return Tier{}, reverts.Newf(reverts.KindInvalidLockingPeriod, "invalid locking period: tier %d", selector)
	}
	return t.tiers[selector-1], nil
}

// All returns a copy of the rows in selector order.
func (t *Table) All() []Tier {
	return append([]Tier(nil), t.tiers...)
}

// Marshal encodes the table as YAML.
func (t *Table) Marshal() ([]byte, error) {
	return yaml.Marshal(&file{Tiers: t.tiers})
}
