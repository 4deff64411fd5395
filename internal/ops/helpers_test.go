package ops

import (
	"testing"
	"time"

	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Init(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("store.Init failed: %v", err)
	}
	return s
}

func stringPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func date(s string) time.Time {
	t, err := time.Parse(record.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

// logFullDay logs all three inputs for one date.
func logFullDay(t *testing.T, s *store.Store, day string) {
	t.Helper()
	if _, err := LogSketch(s, LogSketchInput{Date: day, DurationMinutes: 30, Description: "warmup"}); err != nil {
		t.Fatalf("LogSketch(%s) failed: %v", day, err)
	}
	if _, err := LogMoodboard(s, LogMoodboardInput{Date: day, Images: []string{"a.png"}, Theme: "neon"}); err != nil {
		t.Fatalf("LogMoodboard(%s) failed: %v", day, err)
	}
	if _, err := LogLore(s, LogLoreInput{Date: day, Character: "Vex", Fragment: "origin", NarrativeArc: "arc1"}); err != nil {
		t.Fatalf("LogLore(%s) failed: %v", day, err)
	}
}
