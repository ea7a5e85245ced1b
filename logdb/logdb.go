// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY NOT NULL,
	time INTEGER NOT NULL,
	caller BLOB NOT NULL,
	op TEXT NOT NULL,
	address BLOB NOT NULL,
	name TEXT NOT NULL,
	account0 BLOB,
	account1 BLOB,
	amount BLOB);

CREATE INDEX IF NOT EXISTS event_i0 ON event(address, name);
CREATE INDEX IF NOT EXISTS event_i1 ON event(account0);
CREATE INDEX IF NOT EXISTS event_i2 ON event(account1);
CREATE INDEX IF NOT EXISTS event_i3 ON event(time);
`

const insertEventQuery = "INSERT OR REPLACE INTO event(seq, time, caller, op, address, name, account0, account1, amount) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"

const selectEventQuery = "SELECT seq, time, caller, op, address, name, account0, account1, amount FROM event"

// LogDB indexes committed events in sqlite.
type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a single connection keeps in-memory databases alive and serializes writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
		stmtCache:     newStmtCache(db),
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Insert writes all events of a receipt in one sql transaction.
func (db *LogDB) Insert(ctx context.Context, receipt *tx.Receipt) error {
	if len(receipt.Events) == 0 {
		return nil
	}
	if len(receipt.Events) > MaxEventsPerReceipt {
		return errors.Errorf("receipt %d: %d events, at most %d can be indexed", receipt.Seq, len(receipt.Events), MaxEventsPerReceipt)
	}
	if receipt.Seq > maxSeq {
		return errors.Errorf("receipt seq %d out of range", receipt.Seq)
	}
	stmt, err := db.stmtCache.Prepare(insertEventQuery)
	if err != nil {
		return err
	}
	sqlTx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, ev := range EventsOf(receipt) {
		seq, err := newSequence(ev.Seq, ev.Index)
		if err != nil {
			_ = sqlTx.Rollback()
			return err
		}
		if _, err := sqlTx.StmtContext(ctx, stmt).ExecContext(ctx,
			int64(seq),
			ev.Time,
			ev.Caller.Bytes(),
			ev.Op,
			ev.Address.Bytes(),
			ev.Name,
			accountValue(ev.Accounts[0]),
			accountValue(ev.Accounts[1]),
			amountValue(ev.Amount),
		); err != nil {
			_ = sqlTx.Rollback()
			return err
		}
	}
	return sqlTx.Commit()
}

// NewestSeq returns the invocation sequence of the newest indexed event, zero if empty.
func (db *LogDB) NewestSeq() (uint64, error) {
	var seq sql.NullInt64
	if err := db.db.QueryRow("SELECT MAX(seq) FROM event").Scan(&seq); err != nil {
		return 0, err
	}
	if !seq.Valid {
		return 0, nil
	}
	return sequence(seq.Int64).Seq(), nil
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, selectEventQuery+" ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var (
		args  []any
		where []string
	)
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		where = append(where, "time >= ?")
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			where = append(where, "time <= ?")
		}
	}

	var ors []string
	for _, criteria := range filter.CriteriaSet {
		ands := []string{"1"}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			ands = append(ands, "address = ?")
		}
		if criteria.Name != "" {
			args = append(args, criteria.Name)
			ands = append(ands, "name = ?")
		}
		if criteria.Account != nil {
			args = append(args, criteria.Account.Bytes(), criteria.Account.Bytes())
			ands = append(ands, "(account0 = ? OR account1 = ?)")
		}
		if criteria.Caller != nil {
			args = append(args, criteria.Caller.Bytes())
			ands = append(ands, "caller = ?")
		}
		ors = append(ors, "("+strings.Join(ands, " AND ")+")")
	}
	if len(ors) > 0 {
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	stmt := selectEventQuery
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}
	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq      int64
			time     uint64
			caller   []byte
			op       string
			address  []byte
			name     string
			accounts [2][]byte
			amount   []byte
		)
		if err := rows.Scan(
			&seq,
			&time,
			&caller,
			&op,
			&address,
			&name,
			&accounts[0],
			&accounts[1],
			&amount,
		); err != nil {
			return nil, err
		}
		event := &Event{
			Seq:     sequence(seq).Seq(),
			Index:   sequence(seq).Index(),
			Time:    time,
			Caller:  thor.BytesToAddress(caller),
			Op:      op,
			Address: thor.BytesToAddress(address),
			Name:    name,
		}
		for i, acc := range accounts {
			if len(acc) > 0 {
				a := thor.BytesToAddress(acc)
				event.Accounts[i] = &a
			}
		}
		if amount != nil {
			event.Amount = new(big.Int).SetBytes(amount)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func accountValue(addr *thor.Address) []byte {
	if addr == nil {
		return nil
	}
	return addr.Bytes()
}

func amountValue(amount *big.Int) []byte {
	if amount == nil {
		return nil
	}
	// zero must stay distinguishable from absent
	if amount.Sign() == 0 {
		return []byte{}
	}
	return amount.Bytes()
}

func (e *Event) String() string {
	return fmt.Sprintf("%d.%d %v(%v) amount=%v @%v", e.Seq, e.Index, e.Name, e.Accounts, e.Amount, e.Address)
}
