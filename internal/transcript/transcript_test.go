package transcript

import (
	"context"
	"path/filepath"
	"testing"
)

func openMem(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func Test_Transcript_Record_And_Recent(t *testing.T) {
	s := openMem(t)
	ctx := context.Background()
	inputs := []struct{ in, out, kind string }{
		{"(define x 1)", "#<void>", KindValue},
		{"(+ x 1)", "2", KindValue},
		{"(car 1)", "PrimitiveFailed: car: expected a list, got 1", KindError},
	}
	for _, e := range inputs {
		if err := s.Record(ctx, e.in, e.out, e.kind); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	all, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 entries, got %d", len(all))
	}
	for i, e := range all {
		if e.Input != inputs[i].in || e.Output != inputs[i].out || e.Kind != inputs[i].kind {
			t.Fatalf("entry %d: got %+v", i, e)
		}
		if e.Session != s.Session() {
			t.Fatalf("entry %d: session %q, want %q", i, e.Session, s.Session())
		}
	}

	last, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(last) != 2 || last[0].Input != "(+ x 1)" || last[1].Input != "(car 1)" {
		t.Fatalf("want the last two entries oldest first, got %+v", last)
	}
}

func Test_Transcript_Sessions_Are_Separate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.db")
	ctx := context.Background()

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := a.Record(ctx, "1", "1", KindValue); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	a.Close()

	b, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer b.Close()
	if a.Session() == b.Session() {
		t.Fatalf("each Open should start a new session")
	}
	got, err := b.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("new session should start empty, got %+v", got)
	}
}
