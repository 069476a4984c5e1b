package analytics

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	dErrors "civiclink/pkg/domain-errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	type        TEXT    NOT NULL,
	timestamp   TEXT    NOT NULL,
	actor_hash  TEXT    NOT NULL,
	state       TEXT    NOT NULL DEFAULT '',
	bill_query  TEXT    NOT NULL DEFAULT '',
	topic       TEXT    NOT NULL DEFAULT '',
	endpoint    TEXT    NOT NULL DEFAULT '',
	platform    TEXT    NOT NULL DEFAULT '',
	error       TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events (timestamp);
CREATE INDEX IF NOT EXISTS idx_events_type ON events (type);
`

// SQLiteStore persists the event log in a local SQLite database. The
// pure-Go driver keeps deployment to a single binary plus one file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "open analytics database")
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "initialize analytics schema")
	}
	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (type, timestamp, actor_hash, state, bill_query, topic, endpoint, platform, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(event.Type),
		event.Timestamp.UTC().Format(time.RFC3339Nano),
		event.ActorHash,
		event.State,
		event.BillQuery,
		event.Topic,
		event.Endpoint,
		event.Platform,
		event.Error,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "append analytics event")
	}
	return nil
}

// ListSince implements Store.
func (s *SQLiteStore) ListSince(ctx context.Context, since time.Time) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, timestamp, actor_hash, state, bill_query, topic, endpoint, platform, error
		 FROM events WHERE timestamp >= ? ORDER BY timestamp ASC, id ASC`,
		since.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "query analytics events")
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		var eventType, timestamp string
		if err := rows.Scan(&eventType, &timestamp, &event.ActorHash, &event.State,
			&event.BillQuery, &event.Topic, &event.Endpoint, &event.Platform, &event.Error); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "scan analytics event")
		}
		event.Type = EventType(eventType)
		parsed, err := time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "parse analytics timestamp")
		}
		event.Timestamp = parsed
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "iterate analytics events")
	}
	return events, nil
}

// Purge implements Store.
func (s *SQLiteStore) Purge(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "purge analytics events")
	}
	return nil
}

// PurgeOlderThan implements Store.
func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE timestamp < ?`,
		cutoff.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "prune analytics events")
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "count pruned analytics events")
	}
	return int(removed), nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error { return s.db.Close() }
