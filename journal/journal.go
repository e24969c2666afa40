// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package journal

import (
	"context"
	"database/sql"
	"encoding/binary"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/lockstake/ledger"
	"github.com/vechain/lockstake/log"
	"github.com/vechain/lockstake/staker"
)

var logger = log.WithContext("pkg", "journal")

// Journal is the sqlite backed history of staker events.
type Journal struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open the journal at given path.
func New(path string) (j *Journal, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if j == nil {
			db.Close()
		}
	}()
	// a memory database lives as long as its connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(entryTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	logger.Debug("journal opened", "path", path, "sqlite", driverVer)
	return &Journal{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a journal in ram.
func NewMem() (*Journal, error) {
	return New(":memory:")
}

// Close close the journal.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) Path() string {
	return j.path
}

// DriverVersion returns the version of the linked sqlite library.
func (j *Journal) DriverVersion() string {
	return j.driverVersion
}

// Prepare starts a batch of events committed at state revision rev.
func (j *Journal) Prepare(rev uint64) *Batch {
	return &Batch{db: j.db, rev: rev}
}

// NewestRevision returns the highest revision recorded, zero for an empty journal.
func (j *Journal) NewestRevision(ctx context.Context) (uint64, error) {
	var rev sql.NullInt64
	if err := j.db.QueryRowContext(ctx, "SELECT MAX(revision) FROM entry").Scan(&rev); err != nil {
		return 0, err
	}
	if !rev.Valid {
		return 0, nil
	}
	return uint64(rev.Int64), nil
}

// Filter returns the entries matching filter.
func (j *Journal) Filter(ctx context.Context, filter *Filter) ([]*Entry, error) {
	if filter == nil {
		return j.query(ctx, "SELECT * FROM entry ORDER BY revision ASC,entryIndex ASC")
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := "SELECT * FROM entry WHERE 1"
	if filter.Range != nil {
		args = append(args, int64(filter.Range.From))
		stmt += " AND time >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, int64(filter.Range.To))
			stmt += " AND time <= ? "
		}
	}
	if len(filter.Holders) > 0 {
		stmt += " AND holder IN (" + placeholders(len(filter.Holders)) + ")"
		for _, h := range filter.Holders {
			args = append(args, h.Bytes())
		}
	}
	if len(filter.Kinds) > 0 {
		stmt += " AND kind IN (" + placeholders(len(filter.Kinds)) + ")"
		for _, k := range filter.Kinds {
			args = append(args, string(k))
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY revision DESC,entryIndex DESC "
	} else {
		stmt += " ORDER BY revision ASC,entryIndex ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, int64(filter.Options.Offset), int64(filter.Options.Limit))
	}
	return j.query(ctx, stmt, args...)
}

func (j *Journal) query(ctx context.Context, stmt string, args ...any) ([]*Entry, error) {
	rows, err := j.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			revision       int64
			index          uint32
			kind           string
			holder         []byte
			time           int64
			amount         []byte
			reward         []byte
			stakedAmount   []byte
			pendingRewards []byte
			startTime      int64
			aprBps         int64
			lockExpiry     int64
			tier           uint8
			closed         bool
		)
		if err := rows.Scan(
			&revision,
			&index,
			&kind,
			&holder,
			&time,
			&amount,
			&reward,
			&stakedAmount,
			&pendingRewards,
			&startTime,
			&aprBps,
			&lockExpiry,
			&tier,
			&closed,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &Entry{
			Revision:       uint64(revision),
			Index:          index,
			Kind:           staker.EventKind(kind),
			Holder:         ledger.BytesToAddress(holder),
			Time:           uint64(time),
			Amount:         decodeAmount(amount),
			Reward:         decodeAmount(reward),
			StakedAmount:   decodeAmount(stakedAmount),
			PendingRewards: decodeAmount(pendingRewards),
			StartTime:      uint64(startTime),
			AprBps:         uint64(aprBps),
			LockExpiry:     uint64(lockExpiry),
			Tier:           tier,
			Closed:         closed,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Batch collects the events of one committed state revision.
type Batch struct {
	db      *sql.DB
	rev     uint64
	entries []*Entry
}

// Add appends events to the batch.
func (b *Batch) Add(events ...*staker.Event) *Batch {
	for _, ev := range events {
		b.entries = append(b.entries, newEntry(b.rev, uint32(len(b.entries)), ev))
	}
	return b
}

// Len returns the number of events in the batch.
func (b *Batch) Len() int {
	return len(b.entries)
}

func (b *Batch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Commit writes the batch in one transaction.
func (b *Batch) Commit() error {
	if len(b.entries) == 0 {
		return nil
	}
	return b.execInTx(func(tx *sql.Tx) error {
		for _, e := range b.entries {
			if _, err := tx.Exec("INSERT OR REPLACE INTO entry(revision, entryIndex, kind, holder, time, amount, reward, stakedAmount, pendingRewards, startTime, aprBps, lockExpiry, tier, closed) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);",
				int64(e.Revision),
				e.Index,
				string(e.Kind),
				e.Holder.Bytes(),
				int64(e.Time),
				encodeAmount(e.Amount),
				encodeAmount(e.Reward),
				encodeAmount(e.StakedAmount),
				encodeAmount(e.PendingRewards),
				int64(e.StartTime),
				int64(e.AprBps),
				int64(e.LockExpiry),
				e.Tier,
				e.Closed,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func encodeAmount(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func decodeAmount(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
