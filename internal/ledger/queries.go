package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
	"git.home.luguber.info/inful/handbook/internal/pages"
)

// GetBuild returns one build with its command counts.
func (l *Ledger) GetBuild(ctx context.Context, buildID string) (Build, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	row := l.db.QueryRowContext(ctx, `
		SELECT b.id, b.default_translation, b.status, b.started_at, COALESCE(b.finished_at, 0),
			(SELECT COUNT(*) FROM commands c WHERE c.build_id = b.id AND c.kind = ?),
			(SELECT COUNT(*) FROM commands c WHERE c.build_id = b.id AND c.kind = ?)
		FROM builds b WHERE b.id = ?`,
		kindPage, kindRedirect, buildID,
	)

	var (
		b                 Build
		started, finished int64
	)
	err := row.Scan(&b.ID, &b.DefaultTranslation, &b.Status, &started, &finished, &b.Pages, &b.Redirects)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, ferrors.NewError(ferrors.CategoryNotFound, "build not found").
			WithContext("build_id", buildID).Build()
	}
	if err != nil {
		return Build{}, fmt.Errorf("scan build: %w", err)
	}
	b.StartedAt = time.UnixMilli(started)
	if finished > 0 {
		b.FinishedAt = time.UnixMilli(finished)
	}
	return b, nil
}

// Pages returns the pages a build emitted, in emission order.
func (l *Ledger) Pages(ctx context.Context, buildID string) ([]pages.Page, error) {
	var out []pages.Page
	err := l.scanPayloads(ctx, buildID, kindPage, func(data []byte) error {
		var p pages.Page
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

// Redirects returns the redirects a build emitted, in emission order.
func (l *Ledger) Redirects(ctx context.Context, buildID string) ([]pages.Redirect, error) {
	var out []pages.Redirect
	err := l.scanPayloads(ctx, buildID, kindRedirect, func(data []byte) error {
		var r pages.Redirect
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (l *Ledger) scanPayloads(ctx context.Context, buildID, kind string, fn func([]byte) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rows, err := l.db.QueryContext(ctx,
		"SELECT payload FROM commands WHERE build_id = ? AND kind = ? ORDER BY id",
		buildID, kind,
	)
	if err != nil {
		return fmt.Errorf("query %s commands: %w", kind, err)
	}
	defer rows.Close()

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("scan %s command: %w", kind, err)
		}
		if err := fn(data); err != nil {
			return fmt.Errorf("decode %s command: %w", kind, err)
		}
	}
	return rows.Err()
}
