// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/internal/sync"
)

// psql builds all entity queries with $N placeholders. SQLite accepts the
// same syntax, so one builder serves both backends.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// rowScanner abstracts over *sql.Row and *sql.Rows so that one scan
// function per entity serves both single-row and multi-row queries.
type rowScanner interface {
	Scan(dest ...any) error
}

// tableStore implements [sync.Store] for one entity table. Each entity
// supplies its table name, ordered column list, a scan function and a
// values function; the SQL itself is generic.
type tableStore[T sync.Record] struct {
	table string

	// columns is the ordered column list used by SELECT and scan.
	// The first column is always "id".
	columns []string

	scan   func(row rowScanner) (T, error)
	values func(rec T) map[string]any

	logger *logger.Logger
}

// Get implements [sync.Store]. Soft-deleted rows are returned too: an
// inactive stored record still participates in conflict comparison.
func (s *tableStore[T]) Get(ctx context.Context, q sync.Querier, id int64) (sync.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(s.columns...).
		From(s.table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rec, err := s.scan(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sync.ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "tableStore.Get").
			Str("table", s.table).
			Int64("id", id).
			Msg("failed to scan row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

// ListChangedSince implements [sync.Store]: active rows with last_updated
// strictly greater than since, ordered by id.
func (s *tableStore[T]) ListChangedSince(ctx context.Context, q sync.Querier, since time.Time) ([]sync.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(s.columns...).
		From(s.table).
		Where(sq.Gt{"last_updated": since}).
		Where(sq.Eq{"is_active": true}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "tableStore.ListChangedSince").
			Str("table", s.table).
			Time("since", since).
			Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]sync.Record, 0, 50)
	for rows.Next() {
		rec, scanErr := s.scan(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "tableStore.ListChangedSince").
				Str("table", s.table).
				Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "tableStore.ListChangedSince").
			Str("table", s.table).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// Upsert implements [sync.Store] with a single INSERT ... ON CONFLICT
// statement, so the row update is atomic on both backends.
func (s *tableStore[T]) Upsert(ctx context.Context, q sync.Querier, rec sync.Record) error {
	log := logger.FromContext(ctx)

	typed, ok := rec.(T)
	if !ok {
		return fmt.Errorf("%w: record type %T does not belong to table %s", ErrExecutingStatement, rec, s.table)
	}

	query, args, err := psql.Insert(s.table).
		SetMap(s.values(typed)).
		Suffix(s.onConflictClause()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "tableStore.Upsert").
			Str("table", s.table).
			Int64("id", rec.EntityID()).
			Str("pg_code", postgresErrorCode(err)).
			Msg("failed to execute upsert")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// onConflictClause updates every column except the identity on conflict.
func (s *tableStore[T]) onConflictClause() string {
	assignments := make([]string, 0, len(s.columns)-1)
	for _, column := range s.columns {
		if column == "id" {
			continue
		}
		assignments = append(assignments, column+" = EXCLUDED."+column)
	}

	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(assignments, ", ")
}
