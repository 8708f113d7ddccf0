package localstore

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solvegen.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListAttempts(t *testing.T) {
	s := openTestStore(t)

	attempts := []Attempt{
		{GridPath: "grids/a.yaml", DictionaryHash: "abc", Status: "solved", Steps: 12, PrefilterReduction: 0.4, DurationMS: 5, CreatedAt: time.Now()},
		{GridPath: "grids/a.yaml", DictionaryHash: "abc", Status: "incomplete", Steps: 999, PrefilterReduction: 0.1, DurationMS: 20, CreatedAt: time.Now()},
		{GridPath: "grids/b.yaml", DictionaryHash: "def", Status: "solved", Steps: 4, PrefilterReduction: 0.7, DurationMS: 2, CreatedAt: time.Now()},
	}
	for _, a := range attempts {
		if err := s.RecordAttempt(a); err != nil {
			t.Fatalf("RecordAttempt: %v", err)
		}
	}

	all, err := s.Attempts("", 10)
	if err != nil {
		t.Fatalf("Attempts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d attempts, want 3", len(all))
	}
	// Newest first.
	if all[0].GridPath != "grids/b.yaml" {
		t.Errorf("Attempts[0].GridPath = %s, want grids/b.yaml", all[0].GridPath)
	}

	filtered, err := s.Attempts("grids/a.yaml", 10)
	if err != nil {
		t.Fatalf("Attempts filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("got %d filtered attempts, want 2", len(filtered))
	}
}

func TestSummaryByStatus(t *testing.T) {
	s := openTestStore(t)

	for _, st := range []string{"solved", "solved", "incomplete"} {
		if err := s.RecordAttempt(Attempt{GridPath: "g", Status: st, Steps: 10, DurationMS: 1, CreatedAt: time.Now()}); err != nil {
			t.Fatalf("RecordAttempt: %v", err)
		}
	}

	summary, err := s.SummaryByStatus()
	if err != nil {
		t.Fatalf("SummaryByStatus: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("got %d status groups, want 2", len(summary))
	}
	for _, sm := range summary {
		if sm.Status == "solved" && sm.Count != 2 {
			t.Errorf("solved count = %d, want 2", sm.Count)
		}
		if sm.Status == "incomplete" && sm.Count != 1 {
			t.Errorf("incomplete count = %d, want 1", sm.Count)
		}
	}
}

func TestAttemptsEmptyStore(t *testing.T) {
	s := openTestStore(t)
	attempts, err := s.Attempts("", 10)
	if err != nil {
		t.Fatalf("Attempts: %v", err)
	}
	if len(attempts) != 0 {
		t.Errorf("expected no attempts in a fresh store, got %d", len(attempts))
	}
}
