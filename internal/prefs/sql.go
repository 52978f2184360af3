package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/hyuniciel/inkwell/internal/db"
)

// VisitorCookie holds the anonymous id that keys SQLStorage rows.
const VisitorCookie = "inkwell-visitor"

// VisitorID returns the visitor id from r, issuing a new one when the cookie
// is missing or not a uuid.
func VisitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(VisitorCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.New().String()
	http.SetCookie(w, newCookie(r, VisitorCookie, id))
	return id
}

// SQLStorage stores preferences as rows keyed by visitor id.
type SQLStorage struct {
	ctx     context.Context
	db      *db.DB
	visitor string
}

// NewSQLStorage creates a storage for one visitor.
func NewSQLStorage(ctx context.Context, database *db.DB, visitorID string) *SQLStorage {
	return &SQLStorage{ctx: ctx, db: database, visitor: visitorID}
}

func (s *SQLStorage) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(s.ctx,
		`SELECT value FROM preferences WHERE visitor_id = ? AND key = ?`,
		s.visitor, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading preference %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStorage) Set(key, value string) error {
	tx, err := s.db.BeginTx(s.ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(s.ctx, `
		INSERT INTO visitors (id) VALUES (?)
		ON CONFLICT(id) DO UPDATE SET last_seen = datetime('now')`,
		s.visitor,
	); err != nil {
		return fmt.Errorf("recording visitor: %w", err)
	}
	if _, err := tx.ExecContext(s.ctx, `
		INSERT INTO preferences (visitor_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT(visitor_id, key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`,
		s.visitor, key, value,
	); err != nil {
		return fmt.Errorf("writing preference %s: %w", key, err)
	}
	return tx.Commit()
}
