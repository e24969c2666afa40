// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the storage slots of the staking engine.
// It follows the flow as bellow:
//
//	       o
//	       |
//	[ revertable state ]
//	       |
//	[ stacked map ] -> [ journal ] -> [ stage ] -> [ kv bulk ]
//	       |
//	[ slot cache ]
//	       |
//	[ kv snapshot ]
//
// A State is a private overlay of one operation. Nothing reaches the
// underlying store until its Stage is committed, and a stage built on an
// outdated revision is rejected.
package state
