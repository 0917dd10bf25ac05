package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// DocumentRepo stores whole JSON documents by key, last write wins.
type DocumentRepo struct {
	drv *entsql.Driver
}

// Get decodes the document stored under key into v.
// It returns false with a nil error when the key is absent.
func (r *DocumentRepo) Get(ctx context.Context, key string, v any) (bool, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("data").
		From(b.Table(documentsTable)).
		Where(entsql.EQ("id", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return false, fmt.Errorf("query document %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return false, fmt.Errorf("query document %q: %w", key, err)
		}
		return false, nil
	}

	var data string
	if err := rows.Scan(&data); err != nil {
		return false, fmt.Errorf("scan document %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return false, fmt.Errorf("decode document %q: %w", key, err)
	}
	return true, nil
}

// Put encodes v and stores it under key, replacing any previous document.
func (r *DocumentRepo) Put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(documentsTable).
		Columns("id", "data", "updated_at").
		Values(key, string(data), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("write document %q: %w", key, err)
	}
	return nil
}

// Delete removes the document stored under key. Missing keys are not an error.
func (r *DocumentRepo) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(documentsTable).
		Where(entsql.EQ("id", key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete document %q: %w", key, err)
	}
	return nil
}
