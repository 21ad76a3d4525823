package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/models"
)

// widget is a minimal syncable record used to exercise the engine without
// dragging in real entity stores.
type widget struct {
	models.SyncMeta
	Name string `json:"name"`
}

type fakeStore struct {
	records map[int64]*widget

	// failUpsertID makes Upsert fail for one specific id, to test rollback.
	failUpsertID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[int64]*widget)}
}

func (s *fakeStore) put(w widget) {
	cp := w
	s.records[w.ID] = &cp
}

func (s *fakeStore) Get(ctx context.Context, q Querier, id int64) (Record, error) {
	w, found := s.records[id]
	if !found {
		return nil, ErrRecordNotFound
	}
	cp := *w
	return &cp, nil
}

func (s *fakeStore) ListChangedSince(ctx context.Context, q Querier, since time.Time) ([]Record, error) {
	var out []Record
	for _, w := range s.records {
		if w.IsActive && w.LastUpdated.After(since) {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID() < out[j].EntityID() })
	return out, nil
}

func (s *fakeStore) Upsert(ctx context.Context, q Querier, rec Record) error {
	w, ok := rec.(*widget)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}
	if s.failUpsertID != 0 && w.ID == s.failUpsertID {
		return errors.New("disk full")
	}
	cp := *w
	s.records[w.ID] = &cp
	return nil
}

type fakeAdapter struct {
	store *fakeStore

	// encodeErr makes Encode fail, to test that response assembly failures
	// abort the batch.
	encodeErr error
}

func (a *fakeAdapter) Name() string { return "widgets" }

func (a *fakeAdapter) Decode(raw json.RawMessage) (Record, error) {
	var w widget
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, Validation("", "malformed JSON")
	}
	if w.ID <= 0 {
		return nil, Validation("id", "must be a positive integer")
	}
	if w.LastUpdated.IsZero() {
		return nil, Validation("last_updated", "is required")
	}
	if w.Name == "" {
		return nil, Validation("name", "is required")
	}
	return &w, nil
}

func (a *fakeAdapter) Encode(rec Record) (json.RawMessage, error) {
	if a.encodeErr != nil {
		return nil, a.encodeErr
	}
	return json.Marshal(rec)
}

func (a *fakeAdapter) Store() Store { return a.store }

// snapshotTxManager emulates transactional semantics over the in-memory
// store: state is snapshotted before fn and restored when fn fails.
type snapshotTxManager struct {
	store *fakeStore
}

func (m *snapshotTxManager) InTx(ctx context.Context, fn func(q Querier) error) error {
	snapshot := make(map[int64]*widget, len(m.store.records))
	for id, w := range m.store.records {
		cp := *w
		snapshot[id] = &cp
	}

	if err := fn(nil); err != nil {
		m.store.records = snapshot
		return err
	}
	return nil
}

func newTestEngine(t *testing.T, st *fakeStore, clock time.Time) *Engine {
	t.Helper()

	registry, err := NewRegistry(&fakeAdapter{store: st})
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}

	e := NewEngine(registry, &snapshotTxManager{store: st}, nil, logger.Nop())
	e.now = func() time.Time { return clock }
	return e
}

func rawWidget(t *testing.T, w widget) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal widget: %v", err)
	}
	return raw
}

func decodeWidgets(t *testing.T, raws []json.RawMessage) []widget {
	t.Helper()
	out := make([]widget, 0, len(raws))
	for _, raw := range raws {
		var w widget
		if err := json.Unmarshal(raw, &w); err != nil {
			t.Fatalf("unmarshal result record: %v", err)
		}
		out = append(out, w)
	}
	return out
}

var clock = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestPush_InsertsUnknownRecord(t *testing.T) {
	st := newFakeStore()
	e := newTestEngine(t, st, clock)

	incoming := widget{
		SyncMeta: models.SyncMeta{ID: 7, LastUpdated: clock.Add(-time.Hour), IsActive: true},
		Name:     "arabica beans",
	}

	result, err := e.Push(context.Background(), "widgets", []json.RawMessage{rawWidget(t, incoming)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Synced) != 1 || len(result.Conflicts) != 0 {
		t.Fatalf("expected 1 synced, 0 conflicts, got %d/%d", len(result.Synced), len(result.Conflicts))
	}

	synced := decodeWidgets(t, result.Synced)[0]
	if !synced.Synced {
		t.Error("accepted record must come back with synced=true")
	}
	if !synced.LastUpdated.Equal(clock) {
		t.Errorf("accepted record must be stamped with server time, got %v", synced.LastUpdated)
	}

	stored := st.records[7]
	if stored == nil || stored.Name != "arabica beans" || !stored.Synced {
		t.Fatalf("record was not persisted as accepted: %+v", stored)
	}
}

func TestPush_NewerIncomingOverwrites(t *testing.T) {
	st := newFakeStore()
	st.put(widget{
		SyncMeta: models.SyncMeta{ID: 3, LastUpdated: clock.Add(-2 * time.Hour), Synced: true, IsActive: true},
		Name:     "old name",
	})
	e := newTestEngine(t, st, clock)

	incoming := widget{
		SyncMeta: models.SyncMeta{ID: 3, LastUpdated: clock.Add(-time.Hour), IsActive: true},
		Name:     "new name",
	}

	result, err := e.Push(context.Background(), "widgets", []json.RawMessage{rawWidget(t, incoming)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Synced) != 1 {
		t.Fatalf("newer incoming record must win, got %d synced", len(result.Synced))
	}
	if st.records[3].Name != "new name" {
		t.Errorf("stored record was not overwritten: %q", st.records[3].Name)
	}
	if !st.records[3].LastUpdated.Equal(clock) {
		t.Errorf("winner must carry the server timestamp, got %v", st.records[3].LastUpdated)
	}
}

func TestPush_OlderIncomingLoses(t *testing.T) {
	st := newFakeStore()
	st.put(widget{
		SyncMeta: models.SyncMeta{ID: 3, LastUpdated: clock.Add(-time.Hour), Synced: true, IsActive: true},
		Name:     "server name",
	})
	e := newTestEngine(t, st, clock)

	incoming := widget{
		SyncMeta: models.SyncMeta{ID: 3, LastUpdated: clock.Add(-2 * time.Hour), IsActive: true},
		Name:     "stale name",
	}
	raw := rawWidget(t, incoming)

	result, err := e.Push(context.Background(), "widgets", []json.RawMessage{raw}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Synced) != 0 || len(result.Conflicts) != 1 {
		t.Fatalf("stale record must be a conflict, got %d/%d", len(result.Synced), len(result.Conflicts))
	}
	if string(result.Conflicts[0]) != string(raw) {
		t.Error("losing record must be echoed back unchanged")
	}
	if st.records[3].Name != "server name" {
		t.Errorf("stored record must not change on conflict: %q", st.records[3].Name)
	}
}

func TestPush_TimestampTieKeepsStored(t *testing.T) {
	ts := clock.Add(-time.Hour)

	st := newFakeStore()
	st.put(widget{
		SyncMeta: models.SyncMeta{ID: 5, LastUpdated: ts, Synced: true, IsActive: true},
		Name:     "server name",
	})
	e := newTestEngine(t, st, clock)

	incoming := widget{
		SyncMeta: models.SyncMeta{ID: 5, LastUpdated: ts, IsActive: true},
		Name:     "client name",
	}

	result, err := e.Push(context.Background(), "widgets", []json.RawMessage{rawWidget(t, incoming)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Conflicts) != 1 {
		t.Fatalf("an exact timestamp tie must resolve to the stored record, got %d conflicts", len(result.Conflicts))
	}
	if st.records[5].Name != "server name" {
		t.Errorf("stored record must survive a tie: %q", st.records[5].Name)
	}
}

func TestPush_InvalidRecordAnnotatedAndBatchContinues(t *testing.T) {
	st := newFakeStore()
	e := newTestEngine(t, st, clock)

	bad := json.RawMessage(`{"id": 1, "last_updated": "2026-03-14T10:00:00Z", "is_active": true}`)
	good := rawWidget(t, widget{
		SyncMeta: models.SyncMeta{ID: 2, LastUpdated: clock.Add(-time.Hour), IsActive: true},
		Name:     "valid",
	})

	result, err := e.Push(context.Background(), "widgets", []json.RawMessage{bad, good}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Synced) != 1 || len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 synced and 1 conflict, got %d/%d", len(result.Synced), len(result.Conflicts))
	}

	var annotated map[string]any
	if err := json.Unmarshal(result.Conflicts[0], &annotated); err != nil {
		t.Fatalf("conflict entry is not a JSON object: %v", err)
	}
	reason, ok := annotated["_error"].(string)
	if !ok || reason == "" {
		t.Errorf("conflict entry must carry the failure reason under _error, got %v", annotated["_error"])
	}
	if _, persisted := st.records[1]; persisted {
		t.Error("invalid record must not be persisted")
	}
}

func TestPush_LaterRecordSeesEarlierWrite(t *testing.T) {
	st := newFakeStore()
	e := newTestEngine(t, st, clock)

	first := rawWidget(t, widget{
		SyncMeta: models.SyncMeta{ID: 9, LastUpdated: clock.Add(-time.Hour), IsActive: true},
		Name:     "first",
	})
	// Second entry for the same id carries a timestamp older than the
	// server stamp the first entry just received, so it must lose.
	second := rawWidget(t, widget{
		SyncMeta: models.SyncMeta{ID: 9, LastUpdated: clock.Add(-time.Minute), IsActive: true},
		Name:     "second",
	})

	result, err := e.Push(context.Background(), "widgets", []json.RawMessage{first, second}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Synced) != 1 || len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 synced and 1 conflict, got %d/%d", len(result.Synced), len(result.Conflicts))
	}
	if st.records[9].Name != "first" {
		t.Errorf("later batch entry must compare against the earlier write: %q", st.records[9].Name)
	}
}

func TestPush_ServerUpdatedOnlyWithWatermark(t *testing.T) {
	since := clock.Add(-30 * time.Minute)

	st := newFakeStore()
	st.put(widget{
		SyncMeta: models.SyncMeta{ID: 20, LastUpdated: clock.Add(-10 * time.Minute), Synced: true, IsActive: true},
		Name:     "changed elsewhere",
	})
	st.put(widget{
		SyncMeta: models.SyncMeta{ID: 21, LastUpdated: clock.Add(-2 * time.Hour), Synced: true, IsActive: true},
		Name:     "unchanged",
	})
	e := newTestEngine(t, st, clock)

	pushed := rawWidget(t, widget{
		SyncMeta: models.SyncMeta{ID: 22, LastUpdated: clock.Add(-time.Minute), IsActive: true},
		Name:     "from terminal",
	})

	result, err := e.Push(context.Background(), "widgets", []json.RawMessage{pushed}, &since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := decodeWidgets(t, result.ServerUpdated)
	ids := make([]int64, 0, len(got))
	for _, w := range got {
		ids = append(ids, w.ID)
	}
	// The record just pushed is part of the post-write state, so it shows
	// up alongside the record changed elsewhere.
	want := []int64{20, 22}
	if len(ids) != len(want) || ids[0] != want[0] || ids[1] != want[1] {
		t.Fatalf("expected server_updated ids %v, got %v", want, ids)
	}

	resultNoSince, err := e.Push(context.Background(), "widgets", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resultNoSince.ServerUpdated) != 0 {
		t.Errorf("server_updated must be empty without a watermark, got %d", len(resultNoSince.ServerUpdated))
	}
}

func TestPush_StorageFailureRollsBackWholeBatch(t *testing.T) {
	st := newFakeStore()
	st.failUpsertID = 31
	e := newTestEngine(t, st, clock)

	batch := []json.RawMessage{
		rawWidget(t, widget{
			SyncMeta: models.SyncMeta{ID: 30, LastUpdated: clock.Add(-time.Hour), IsActive: true},
			Name:     "fine",
		}),
		rawWidget(t, widget{
			SyncMeta: models.SyncMeta{ID: 31, LastUpdated: clock.Add(-time.Hour), IsActive: true},
			Name:     "poisoned",
		}),
	}

	result, err := e.Push(context.Background(), "widgets", batch, nil)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if result != nil {
		t.Error("a failed push must not return a partial result")
	}
	if len(st.records) != 0 {
		t.Errorf("all writes of a failed batch must roll back, %d rows remain", len(st.records))
	}
}

// rerunTxManager aborts the first attempt after fn completes and runs the
// whole unit of work a second time, the way the store layer re-runs
// transactions that lose a serialization race.
type rerunTxManager struct {
	store *fakeStore
}

func (m *rerunTxManager) InTx(ctx context.Context, fn func(q Querier) error) error {
	snapshot := make(map[int64]*widget, len(m.store.records))
	for id, w := range m.store.records {
		cp := *w
		snapshot[id] = &cp
	}

	if err := fn(nil); err != nil {
		m.store.records = snapshot
		return err
	}

	// first attempt discarded, run again from the snapshot
	m.store.records = snapshot
	return fn(nil)
}

func TestPush_ReRunUnitOfWorkDoesNotDuplicateResults(t *testing.T) {
	st := newFakeStore()
	registry, err := NewRegistry(&fakeAdapter{store: st})
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	e := NewEngine(registry, &rerunTxManager{store: st}, nil, logger.Nop())
	e.now = func() time.Time { return clock }

	batch := []json.RawMessage{
		rawWidget(t, widget{
			SyncMeta: models.SyncMeta{ID: 60, LastUpdated: clock.Add(-time.Hour), IsActive: true},
			Name:     "retried",
		}),
		json.RawMessage(`{"id": 0}`),
	}

	result, err := e.Push(context.Background(), "widgets", batch, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Synced) != 1 {
		t.Errorf("expected 1 synced record after a re-run, got %d", len(result.Synced))
	}
	if len(result.Conflicts) != 1 {
		t.Errorf("expected 1 conflict after a re-run, got %d", len(result.Conflicts))
	}
	if len(st.records) != 1 {
		t.Errorf("expected 1 stored row after a re-run, got %d", len(st.records))
	}
}

func TestPush_EncodeFailureRollsBackWholeBatch(t *testing.T) {
	st := newFakeStore()
	registry, err := NewRegistry(&fakeAdapter{store: st, encodeErr: errors.New("unrepresentable value")})
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	e := NewEngine(registry, &snapshotTxManager{store: st}, nil, logger.Nop())
	e.now = func() time.Time { return clock }

	batch := []json.RawMessage{
		rawWidget(t, widget{
			SyncMeta: models.SyncMeta{ID: 50, LastUpdated: clock.Add(-time.Hour), IsActive: true},
			Name:     "unreportable",
		}),
	}

	result, err := e.Push(context.Background(), "widgets", batch, nil)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if result != nil {
		t.Error("a failed push must not return a partial result")
	}
	if len(st.records) != 0 {
		t.Errorf("a record that cannot be reported back must not commit, %d rows remain", len(st.records))
	}
}

func TestPush_UnknownEntity(t *testing.T) {
	e := newTestEngine(t, newFakeStore(), clock)

	_, err := e.Push(context.Background(), "gadgets", nil, nil)
	if !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestPush_KeepsStoredTimestampWhenClockLags(t *testing.T) {
	future := clock.Add(time.Hour)

	st := newFakeStore()
	st.put(widget{
		SyncMeta: models.SyncMeta{ID: 40, LastUpdated: future, Synced: true, IsActive: true},
		Name:     "from the future",
	})
	e := newTestEngine(t, st, clock)

	incoming := widget{
		SyncMeta: models.SyncMeta{ID: 40, LastUpdated: future.Add(time.Minute), IsActive: true},
		Name:     "even newer",
	}

	result, err := e.Push(context.Background(), "widgets", []json.RawMessage{rawWidget(t, incoming)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Synced) != 1 {
		t.Fatalf("newer incoming record must win, got %d synced", len(result.Synced))
	}
	if st.records[40].LastUpdated.Before(future) {
		t.Errorf("last_updated must never decrease: stored %v, floor %v", st.records[40].LastUpdated, future)
	}
}

func TestPull_ReturnsActiveRecordsChangedAfterWatermark(t *testing.T) {
	since := clock.Add(-time.Hour)

	st := newFakeStore()
	st.put(widget{
		SyncMeta: models.SyncMeta{ID: 1, LastUpdated: clock.Add(-30 * time.Minute), Synced: true, IsActive: true},
		Name:     "changed",
	})
	st.put(widget{
		SyncMeta: models.SyncMeta{ID: 2, LastUpdated: clock.Add(-2 * time.Hour), Synced: true, IsActive: true},
		Name:     "older than watermark",
	})
	st.put(widget{
		SyncMeta: models.SyncMeta{ID: 3, LastUpdated: clock.Add(-10 * time.Minute), Synced: true, IsActive: false},
		Name:     "soft deleted",
	})
	// strictly-after boundary: exactly-at-watermark must stay out
	st.put(widget{
		SyncMeta: models.SyncMeta{ID: 4, LastUpdated: since, Synced: true, IsActive: true},
		Name:     "at the watermark",
	})
	e := newTestEngine(t, st, clock)

	records, err := e.Pull(context.Background(), "widgets", since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := decodeWidgets(t, records)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only the active changed record, got %+v", got)
	}
}

func TestPull_UnknownEntity(t *testing.T) {
	e := newTestEngine(t, newFakeStore(), clock)

	_, err := e.Pull(context.Background(), "gadgets", clock)
	if !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}
