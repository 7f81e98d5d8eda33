package session

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "focusmind.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	})
	return store
}

func recordedSession(t *testing.T, scores ...float64) (*Recorder, Stats) {
	t.Helper()
	rec := NewRecorder(base)
	for i, s := range scores {
		rec.Append(base.Add(time.Duration(i)*2*time.Second), s)
	}
	st, ok := Aggregate(rec.Samples(), DefaultRecoveryThreshold)
	if !ok {
		t.Fatal("Aggregate() ok = false")
	}
	return rec, st
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec, st := recordedSession(t, 50, 60, 40, 70)
	endedAt := base.Add(10 * time.Second)

	if err := store.SaveSession(ctx, rec, st, endedAt); err != nil {
		t.Fatalf("SaveSession() error: %v", err)
	}

	sessions, err := store.ListSessions(ctx, nil)
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}

	got := sessions[0]
	if got.ID != rec.ID().String() {
		t.Errorf("ID = %s, want %s", got.ID, rec.ID())
	}
	if !got.StartedAt.Equal(base) || !got.EndedAt.Equal(endedAt) {
		t.Errorf("times = %v..%v, want %v..%v", got.StartedAt, got.EndedAt, base, endedAt)
	}
	if got.Stats.SampleCount != st.SampleCount ||
		got.Stats.Duration != st.Duration ||
		got.Stats.UpChanges != st.UpChanges ||
		got.Stats.DownChanges != st.DownChanges ||
		got.Stats.Recoveries != st.Recoveries {
		t.Errorf("stats = %+v, want %+v", got.Stats, st)
	}
	if math.Abs(got.Stats.AverageFocus-st.AverageFocus) > 1e-9 ||
		math.Abs(got.Stats.StdDevFocus-st.StdDevFocus) > 1e-9 ||
		math.Abs(got.Stats.LargestDrop-st.LargestDrop) > 1e-9 {
		t.Errorf("stored aggregates drifted: %+v vs %+v", got.Stats, st)
	}
	if !got.Stats.MinFocusAt.Equal(st.MinFocusAt) || !got.Stats.MaxFocusAt.Equal(st.MaxFocusAt) {
		t.Errorf("min/max timestamps drifted: %v/%v", got.Stats.MinFocusAt, got.Stats.MaxFocusAt)
	}

	scores, err := store.Scores(ctx, rec.ID().String())
	if err != nil {
		t.Fatalf("Scores() error: %v", err)
	}
	want := rec.Samples()
	if len(scores) != len(want) {
		t.Fatalf("got %d scores, want %d", len(scores), len(want))
	}
	for i := range scores {
		if !scores[i].Timestamp.Equal(want[i].Timestamp) || scores[i].Score != want[i].Score {
			t.Errorf("score %d = %+v, want %+v", i, scores[i], want[i])
		}
	}
}

func TestListSessionsSince(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older, olderStats := recordedSession(t, 50, 55)
	newer, newerStats := recordedSession(t, 60, 65)

	if err := store.SaveSession(ctx, older, olderStats, base.Add(time.Minute)); err != nil {
		t.Fatalf("SaveSession() error: %v", err)
	}
	if err := store.SaveSession(ctx, newer, newerStats, base.Add(time.Hour)); err != nil {
		t.Fatalf("SaveSession() error: %v", err)
	}

	since := base.Add(30 * time.Minute)
	sessions, err := store.ListSessions(ctx, &since)
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if sessions[0].ID != newer.ID().String() {
		t.Errorf("ID = %s, want the newer session", sessions[0].ID)
	}

	all, err := store.ListSessions(ctx, nil)
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d sessions, want 2", len(all))
	}
	if all[0].ID != older.ID().String() {
		t.Error("sessions not ordered oldest first")
	}
}

func TestSaveSessionEmptyHistory(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(base)

	// A session that never emitted still persists its header row.
	if err := store.SaveSession(context.Background(), rec, Stats{}, base.Add(time.Second)); err != nil {
		t.Fatalf("SaveSession() error: %v", err)
	}

	scores, err := store.Scores(context.Background(), rec.ID().String())
	if err != nil {
		t.Fatalf("Scores() error: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("got %d scores, want 0", len(scores))
	}
}
