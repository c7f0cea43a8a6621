// Package journal records consumed items in SQLite, so that a run can be audited afterwards:
// every item must show up exactly once.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/teenjuna/handoff"
	"github.com/teenjuna/handoff/internal"
)

var (
	// ErrClosed is returned by Journal methods when the journal has been closed.
	ErrClosed = errors.New("journal is closed")
	// ErrDuplicate is returned by [Journal.Record] when the item was already recorded.
	ErrDuplicate = errors.New("item already recorded")
)

const (
	memory = ":memory:"
)

// Journal is a log of consumed items backed by SQLite.
type Journal struct {
	cfg *Config
	db  *sql.DB
}

// New creates a new Journal with the provided configuration functions.
//
// Default configuration:
//   - File: ":memory:" (in-memory database)
//   - Durable: false
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New(configFuncs ...ConfigFunc) (*Journal, error) {
	cfg := &Config{}
	cfg.File(memory)
	for _, cf := range configFuncs {
		cf(cfg)
	}

	db, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := setup(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setup: %w", err)
	}

	journal := Journal{
		cfg: cfg,
		db:  db,
	}

	return &journal, nil
}

// Record stores that the consumer took the item.
//
// Returns [ErrDuplicate] if an item with the same producer and sequence number was recorded
// before, and [ErrClosed] if the journal has been closed.
func (j *Journal) Record(consumer string, item *handoff.Item) error {
	_, err := j.db.Exec(
		`
		insert into item (
			producer,
			seq,
			consumer,
			consumed_at
		) values (
			:producer,
			:seq,
			:consumer,
			:consumed_at
		)
		`,
		sql.Named("producer", item.Producer()),
		sql.Named("seq", item.Seq()),
		sql.Named("consumer", consumer),
		sql.Named("consumed_at", toTimestamp(time.Now())),
	)
	return j.wrap(err)
}

// Entries returns every recorded item in the order it was recorded.
func (j *Journal) Entries() ([]Entry, error) {
	rows, err := j.db.Query(
		`
		select producer, seq, consumer, consumed_at
		from item
		order by rowid asc
		`,
	)
	if err != nil {
		return nil, j.wrap(err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var (
			e          Entry
			consumedAt int64
		)
		if err := rows.Scan(&e.Producer, &e.Seq, &e.Consumer, &consumedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.ConsumedAt = fromTimestamp(consumedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return entries, nil
}

// Stats returns the number of recorded items and distinct producers and consumers.
func (j *Journal) Stats() (*Stats, error) {
	var stats Stats
	err := j.db.QueryRow(
		`
		select
			count(*) as items,
			count(distinct producer) as producers,
			count(distinct consumer) as consumers
		from
			item
		`,
	).Scan(
		&stats.Items,
		&stats.Producers,
		&stats.Consumers,
	)
	if err != nil {
		return nil, j.wrap(err)
	}

	return &stats, nil
}

// Close closes the underlying SQLite database.
//
// After closing, all methods on Journal will return [ErrClosed].
func (j *Journal) Close() error {
	return j.db.Close()
}

// Entry is a recorded item.
type Entry struct {
	Producer   string
	Seq        int
	Consumer   string
	ConsumedAt time.Time
}

// Stats represents statistics about the journal.
type Stats struct {
	Items     int
	Producers int
	Consumers int
}

func (j *Journal) wrap(err error) error {
	var sqliteErr sqlite3.Error
	switch {
	case err == nil:
		return nil
	case err.Error() == "sql: database is closed":
		return ErrClosed
	case errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint:
		return ErrDuplicate
	default:
		return err
	}
}

func open(cfg *Config) (*sql.DB, error) {
	params := url.Values{}
	params.Add("_txlock", "immediate")
	params.Add("_timeout", "5000") // 5s
	uri := *cfg.uri
	if cfg.memory() {
		uri.Opaque = internal.GenerateID()
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	} else {
		params.Add("_journal", "wal")
		if cfg.durable {
			params.Add("_sync", "full")
		} else {
			params.Add("_sync", "normal")
		}
	}

	uri.RawQuery = params.Encode()

	db, err := sql.Open("sqlite3", uri.String())
	if err != nil {
		return nil, err
	}

	// Consumers record concurrently; a single connection serializes them without busy errors.
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}

func setup(db *sql.DB) error {
	if _, err := db.Exec(
		`
		create table if not exists item (
			producer    text not null,
			seq         int not null,
			consumer    text not null,
			consumed_at int not null,
			primary key (producer, seq)
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return nil
}

func toTimestamp(time time.Time) int64 {
	return time.UnixNano()
}

func fromTimestamp(timestamp int64) time.Time {
	return time.Unix(0, timestamp)
}
