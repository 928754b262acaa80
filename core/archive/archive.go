// Package archive keeps counter readings and topic documents in a local
// SQLite database so successive runs can be compared.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/counters"
)

// ErrNoReadings is returned by LatestCounters on an empty archive.
var ErrNoReadings = errors.New("no counter readings archived")

const timeLayout = "2006-01-02T15:04:05.000000000Z"

const (
	kindAbsent = "absent"
	kindInt    = "int"
	kindFloat  = "float"
)

// Archive is a SQLite-backed store. It is safe for concurrent use.
type Archive struct {
	db *sql.DB
}

// StoredDocument is an archived topic document.
type StoredDocument struct {
	ID       string
	Document core.Document
}

// Open opens or creates the archive at path, creating parent directories as
// needed. ":memory:" opens a private in-memory archive.
func Open(path string) (*Archive, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating archive directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	// One connection keeps an in-memory database shared and serializes writers.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating archive schema: %w", err)
		}
	}
	return &Archive{db: db}, nil
}

// Close releases the database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveCounters stores one sanitized reading and returns its id. Absent
// values are stored too, so the key set survives a round trip. An empty
// reading is still a reading and becomes the latest one.
func (a *Archive) SaveCounters(ctx context.Context, takenAt time.Time, values counters.Sanitized) (string, error) {
	id := newID()
	at := takenAt.UTC().Format(timeLayout)

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "INSERT INTO readings (id, taken_at) VALUES (?, ?)", id, at); err != nil {
		return "", fmt.Errorf("inserting reading: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO counter_readings (reading_id, key, kind, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, key := range values.Keys() {
		kind, value := encodeValue(values[key])
		if _, err := stmt.ExecContext(ctx, id, key, kind, value); err != nil {
			return "", fmt.Errorf("inserting counter %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing counters: %w", err)
	}
	return id, nil
}

// LatestCounters returns the most recent reading and when it was taken.
func (a *Archive) LatestCounters(ctx context.Context) (counters.Sanitized, time.Time, error) {
	var id, at string
	err := a.db.QueryRowContext(ctx,
		"SELECT id, taken_at FROM readings ORDER BY taken_at DESC, id DESC LIMIT 1",
	).Scan(&id, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoReadings
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("finding latest reading: %w", err)
	}

	takenAt, err := time.Parse(timeLayout, at)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parsing taken_at %q: %w", at, err)
	}

	rows, err := a.db.QueryContext(ctx,
		"SELECT key, kind, value FROM counter_readings WHERE reading_id = ?", id)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying reading %s: %w", id, err)
	}
	defer rows.Close()

	out := counters.Sanitized{}
	for rows.Next() {
		var key, kind, value string
		if err := rows.Scan(&key, &kind, &value); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning counter: %w", err)
		}
		v, err := decodeValue(kind, value)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("counter %s: %w", key, err)
		}
		out[key] = v
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}
	return out, takenAt, nil
}

// SaveDocument stores a rendered-ready topic document and returns its id.
func (a *Archive) SaveDocument(ctx context.Context, doc core.Document) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}

	id := newID()
	_, err = a.db.ExecContext(ctx,
		"INSERT INTO documents (id, topic, url, fetched_at, body) VALUES (?, ?, ?, ?, ?)",
		id, doc.Topic, doc.URL, doc.FetchedAt.UTC().Format(timeLayout), string(body),
	)
	if err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}
	return id, nil
}

// Documents returns the archived documents of topic, newest first. Cell
// values come back as JSON decodes them: numbers are float64.
func (a *Archive) Documents(ctx context.Context, topic string) ([]StoredDocument, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT id, body FROM documents WHERE topic = ? ORDER BY fetched_at DESC, id DESC", topic)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var out []StoredDocument
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		var doc core.Document
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("decoding document %s: %w", id, err)
		}
		out = append(out, StoredDocument{ID: id, Document: doc})
	}
	return out, rows.Err()
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func encodeValue(v counters.Value) (string, string) {
	switch {
	case !v.Valid():
		return kindAbsent, ""
	case v.IsFloat():
		return kindFloat, strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	default:
		return kindInt, strconv.FormatInt(v.Int64(), 10)
	}
}

func decodeValue(kind, value string) (counters.Value, error) {
	switch kind {
	case kindAbsent:
		return counters.Absent(), nil
	case kindInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return counters.Absent(), err
		}
		return counters.Int(i), nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return counters.Absent(), err
		}
		return counters.Float(f), nil
	}
	return counters.Absent(), fmt.Errorf("unknown value kind %q", kind)
}
