package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// KVRepo is a JSON key-value store on top of the kv table.
type KVRepo struct {
	db *sql.DB
	q  querier
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db, q: db}
}

// Get decodes the value stored under key into dest.
// found is false when the key is absent or holds JSON null.
func (r *KVRepo) Get(ctx context.Context, key string, dest any) (found bool, err error) {
	row := r.q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("kv get %s: %w", key, err)
	}
	if raw == "" || raw == "null" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("kv decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores v as JSON under key. A nil v deletes the key.
func (r *KVRepo) Set(ctx context.Context, key string, v any) error {
	if v == nil {
		return r.Delete(ctx, key)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv encode %s: %w", key, err)
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in ascending order.
func (r *KVRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT key FROM kv ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("kv keys: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("kv keys scan: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv keys rows: %w", err)
	}
	return out, nil
}

// WithTx runs fn against a repo bound to a single transaction.
func (r *KVRepo) WithTx(ctx context.Context, fn func(kv *KVRepo) error) error {
	if r.db == nil {
		// Already inside a transaction.
		return fn(r)
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&KVRepo{q: tx})
	})
}
