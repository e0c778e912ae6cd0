package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	s := newTestStore(t)

	a, b := s.HashIP("203.0.113.9"), s.HashIP("203.0.113.9")
	if a != b {
		t.Errorf("hash not stable: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("hash length: got %d, want 16", len(a))
	}
	if a == s.HashIP("203.0.113.10") {
		t.Error("different addresses should hash differently")
	}
	if a == "203.0.113.9" {
		t.Error("address stored in the clear")
	}
}

func TestRecordVisitAndStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	visits := []struct{ ip, path string }{
		{"10.0.0.1", "/"},
		{"10.0.0.1", "/resume"},
		{"10.0.0.2", "/"},
	}
	for _, v := range visits {
		if err := s.RecordVisit(ctx, v.ip, "test-agent", v.path); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}

	stats, err := s.Stats(ctx, 2)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 3 {
		t.Errorf("total: got %d, want 3", stats.TotalVisitors)
	}
	if stats.UniqueVisitors != 2 {
		t.Errorf("unique: got %d, want 2", stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 3 || stats.VisitorsThisWeek != 3 {
		t.Errorf("today=%d week=%d, want 3 and 3", stats.VisitorsToday, stats.VisitorsThisWeek)
	}
	if len(stats.RecentVisitors) != 2 {
		t.Fatalf("recent: got %d, want 2", len(stats.RecentVisitors))
	}
	if stats.RecentVisitors[0].Path != "/" || stats.RecentVisitors[0].HashedIP != s.HashIP("10.0.0.2") {
		t.Errorf("most recent visit: %+v", stats.RecentVisitors[0])
	}
}

func TestRecordEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.RecordEvent(ctx, EventResumeDownload); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}
	if err := s.RecordEvent(ctx, EventContactWeb); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}

	stats, err := s.Stats(ctx, 10)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if got := stats.Events[EventResumeDownload]; got != 3 {
		t.Errorf("resume downloads: got %d, want 3", got)
	}
	if got := stats.Events[EventContactWeb]; got != 1 {
		t.Errorf("contact redirects: got %d, want 1", got)
	}
	if _, ok := stats.Events[EventThemeToggle]; ok {
		t.Error("unrecorded events should be absent")
	}
}

func TestCleanup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now.Add(-Retention - 24*time.Hour) }
	if err := s.RecordVisit(ctx, "10.0.0.1", "old", "/"); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return now }
	if err := s.RecordVisit(ctx, "10.0.0.2", "new", "/"); err != nil {
		t.Fatal(err)
	}

	n, err := s.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 1 {
		t.Errorf("removed %d rows, want 1", n)
	}

	stats, err := s.Stats(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalVisitors != 1 || stats.RecentVisitors[0].UserAgent != "new" {
		t.Errorf("unexpected remaining visits: %+v", stats.RecentVisitors)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "portfolio.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.RecordEvent(context.Background(), EventThemeToggle); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	s.Close()

	// Reopening keeps the data and does not fail on the existing schema.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	stats, err := s.Stats(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Events[EventThemeToggle] != 1 {
		t.Errorf("events after reopen: %v", stats.Events)
	}
}
