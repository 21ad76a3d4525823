package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/internal/sync"
	"github.com/lromeira/pdv-sync/models"
)

func newTestCategoryStore(t *testing.T) (*tableStore[*models.Category], sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	return newCategoryStore(logger.Nop()), mock, db
}

func strPtr(s string) *string { return &s }

func TestTableStoreGet_Success(t *testing.T) {
	st, mock, db := newTestCategoryStore(t)
	defer db.Close()

	now := time.Now().UTC()

	rows := sqlmock.
		NewRows(categoryColumns).
		AddRow(4, "Bebidas", nil, "#00FF00", now, true, true)

	mock.ExpectQuery("SELECT id, name, description, color, last_updated, synced, is_active FROM categories WHERE id = \\$1").
		WithArgs(int64(4)).
		WillReturnRows(rows)

	rec, err := st.Get(context.Background(), db, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cat, ok := rec.(*models.Category)
	if !ok {
		t.Fatalf("expected *models.Category, got %T", rec)
	}
	if cat.ID != 4 || cat.Name != "Bebidas" || cat.Color == nil || *cat.Color != "#00FF00" {
		t.Errorf("unexpected record: %+v", cat)
	}
}

func TestTableStoreGet_NotFound(t *testing.T) {
	st, mock, db := newTestCategoryStore(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM categories").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := st.Get(context.Background(), db, 99)
	if !errors.Is(err, sync.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestTableStoreListChangedSince_FiltersInSQL(t *testing.T) {
	st, mock, db := newTestCategoryStore(t)
	defer db.Close()

	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	now := since.Add(time.Hour)

	rows := sqlmock.
		NewRows(categoryColumns).
		AddRow(1, "Padaria", "pães e bolos", nil, now, true, true).
		AddRow(2, "Hortifruti", nil, nil, now, true, true)

	mock.ExpectQuery("SELECT .* FROM categories WHERE last_updated > \\$1 AND is_active = \\$2 ORDER BY id").
		WithArgs(since, true).
		WillReturnRows(rows)

	records, err := st.ListChangedSince(context.Background(), db, since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].EntityID() != 1 || records[1].EntityID() != 2 {
		t.Errorf("records out of order: %d, %d", records[0].EntityID(), records[1].EntityID())
	}
}

func TestTableStoreUpsert_OnConflictUpdatesAllColumns(t *testing.T) {
	st, mock, db := newTestCategoryStore(t)
	defer db.Close()

	now := time.Now().UTC()
	cat := &models.Category{
		SyncMeta: models.SyncMeta{ID: 7, LastUpdated: now, Synced: true, IsActive: true},
		Name:     "Limpeza",
		Color:    strPtr("#AABBCC"),
	}

	// squirrel's SetMap emits columns in lexical order.
	mock.ExpectExec("INSERT INTO categories \\(color,description,id,is_active,last_updated,name,synced\\) "+
		"VALUES \\(\\$1,\\$2,\\$3,\\$4,\\$5,\\$6,\\$7\\) "+
		"ON CONFLICT \\(id\\) DO UPDATE SET "+
		"name = EXCLUDED.name, description = EXCLUDED.description, color = EXCLUDED.color, "+
		"last_updated = EXCLUDED.last_updated, synced = EXCLUDED.synced, is_active = EXCLUDED.is_active").
		WithArgs(cat.Color, nil, int64(7), true, now, "Limpeza", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := st.Upsert(context.Background(), db, cat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTableStoreUpsert_WrongRecordType(t *testing.T) {
	st, _, db := newTestCategoryStore(t)
	defer db.Close()

	product := &models.Product{SyncMeta: models.SyncMeta{ID: 1}}

	err := st.Upsert(context.Background(), db, product)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}
