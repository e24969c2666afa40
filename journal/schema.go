// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package journal

// amounts are stored as 8 byte big endian blobs, sqlite integers are signed.
const entryTableSchema = `
CREATE TABLE IF NOT EXISTS entry (
	revision INTEGER NOT NULL,
	entryIndex INTEGER NOT NULL,
	kind TEXT NOT NULL,
	holder BLOB(20) NOT NULL,
	time INTEGER NOT NULL,
	amount BLOB(8),
	reward BLOB(8),
	stakedAmount BLOB(8),
	pendingRewards BLOB(8),
	startTime INTEGER,
	aprBps INTEGER,
	lockExpiry INTEGER,
	tier INTEGER,
	closed INTEGER,
	PRIMARY KEY (revision, entryIndex)
);

CREATE INDEX IF NOT EXISTS holderIndex ON entry(holder);
CREATE INDEX IF NOT EXISTS kindIndex ON entry(kind);
CREATE INDEX IF NOT EXISTS timeIndex ON entry(time);
`
