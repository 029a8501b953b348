// Package ledger keeps a sqlite record of what each build emitted.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
	"git.home.luguber.info/inful/handbook/internal/pages"
	_ "modernc.org/sqlite"
)

const (
	kindPage     = "page"
	kindRedirect = "redirect"
)

// Build status values.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Build is one row of the builds table.
type Build struct {
	ID                 string
	DefaultTranslation string
	Status             string
	StartedAt          time.Time
	FinishedAt         time.Time
	Pages              int
	Redirects          int
}

// Ledger stores builds and the page/redirect commands they emitted.
type Ledger struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (or creates) the ledger database. Use ":memory:" for tests.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryLedger, "open ledger database").
			WithContext("path", path).Build()
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db}
	if err := l.initialize(); err != nil {
		_ = db.Close()
		return nil, ferrors.WrapError(err, ferrors.CategoryLedger, "initialize ledger schema").Build()
	}
	return l, nil
}

func (l *Ledger) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		default_translation TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER
	);
	CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL REFERENCES builds(id),
		kind TEXT NOT NULL,
		path TEXT NOT NULL,
		target TEXT NOT NULL,
		payload BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_commands_build ON commands(build_id, kind);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Begin records the start of a build and returns an Actions sink bound to it.
func (l *Ledger) Begin(ctx context.Context, buildID, defaultTranslation string) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.ExecContext(ctx,
		"INSERT INTO builds (id, default_translation, status, started_at) VALUES (?, ?, ?, ?)",
		buildID, defaultTranslation, StatusRunning, time.Now().UnixMilli(),
	)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryLedger, "insert build").
			WithContext("build_id", buildID).Build()
	}
	return &Session{ctx: ctx, ledger: l, buildID: buildID}, nil
}

// Finish stamps the build with its final status.
func (l *Ledger) Finish(ctx context.Context, buildID, status string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.db.ExecContext(ctx,
		"UPDATE builds SET status = ?, finished_at = ? WHERE id = ?",
		status, time.Now().UnixMilli(), buildID,
	)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryLedger, "update build").
			WithContext("build_id", buildID).Build()
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ferrors.NewError(ferrors.CategoryNotFound, "build not found").
			WithContext("build_id", buildID).Build()
	}
	return nil
}

func (l *Ledger) appendCommand(ctx context.Context, buildID, kind, path, target string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", kind, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.db.ExecContext(ctx,
		"INSERT INTO commands (build_id, kind, path, target, payload) VALUES (?, ?, ?, ?, ?)",
		buildID, kind, path, target, data,
	)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryLedger, "insert command").
			WithContext("build_id", buildID).WithContext("path", path).Build()
	}
	return nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db.Close()
}

// Session records the commands of one build. It implements pages.Actions.
type Session struct {
	ctx     context.Context
	ledger  *Ledger
	buildID string
}

// BuildID returns the build the session writes to.
func (s *Session) BuildID() string { return s.buildID }

func (s *Session) CreatePage(p pages.Page) error {
	return s.ledger.appendCommand(s.ctx, s.buildID, kindPage, p.Path, p.Component, p)
}

func (s *Session) CreateRedirect(r pages.Redirect) error {
	return s.ledger.appendCommand(s.ctx, s.buildID, kindRedirect, r.FromPath, r.ToPath, r)
}
