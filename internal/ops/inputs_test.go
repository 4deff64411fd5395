package ops

import (
	"testing"

	"github.com/dsgnrg/looptrack/internal/errors"
)

func TestLogSketch_HappyPath(t *testing.T) {
	s := testStore(t)

	out, err := LogSketch(s, LogSketchInput{
		Date:            "2024-03-05",
		DurationMinutes: 30,
		Description:     "ambient pad sketch",
		Tags:            []string{"ambient", " pad ", ""},
	})
	if err != nil {
		t.Fatalf("LogSketch failed: %v", err)
	}
	if out.Date != "2024-03-05" {
		t.Errorf("Date = %q, want %q", out.Date, "2024-03-05")
	}
	if out.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}

	day, err := DayInput(s, "2024-03-05")
	if err != nil {
		t.Fatalf("DayInput failed: %v", err)
	}
	if day.SonicSketch == nil {
		t.Fatal("SonicSketch should be stored")
	}
	if got := day.SonicSketch.Tags; len(got) != 2 {
		t.Errorf("Tags = %v, want cleaned 2 tags", got)
	}
}

func TestLogSketch_RequiresPositiveDuration(t *testing.T) {
	s := testStore(t)

	_, err := LogSketch(s, LogSketchInput{DurationMinutes: 0, Description: "x"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestLogSketch_RejectsBadDate(t *testing.T) {
	s := testStore(t)

	_, err := LogSketch(s, LogSketchInput{Date: "03/05/2024", DurationMinutes: 10, Description: "x"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestLogMoodboard_RequiresImages(t *testing.T) {
	s := testStore(t)

	_, err := LogMoodboard(s, LogMoodboardInput{Theme: "neon"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestLogLore_RequiresArc(t *testing.T) {
	s := testStore(t)

	_, err := LogLore(s, LogLoreInput{Character: "Vex", Fragment: "origin"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestDailyStatus_UnloggedDateAllFalse(t *testing.T) {
	s := testStore(t)

	status, err := DailyStatus(s, "2024-03-05")
	if err != nil {
		t.Fatalf("DailyStatus failed: %v", err)
	}
	if status.SketchDone || status.MoodboardDone || status.LoreDone || status.AllDone {
		t.Errorf("status = %+v, want all false for unlogged date", status)
	}
}

func TestDailyStatus_PartialThenComplete(t *testing.T) {
	s := testStore(t)
	day := "2024-03-05"

	if _, err := LogSketch(s, LogSketchInput{Date: day, DurationMinutes: 20, Description: "bass loop"}); err != nil {
		t.Fatalf("LogSketch failed: %v", err)
	}

	status, err := DailyStatus(s, day)
	if err != nil {
		t.Fatalf("DailyStatus failed: %v", err)
	}
	if !status.SketchDone {
		t.Error("SketchDone = false, want true")
	}
	if status.AllDone {
		t.Error("AllDone = true with only one input, want false")
	}

	logFullDay(t, s, day)

	status, err = DailyStatus(s, day)
	if err != nil {
		t.Fatalf("DailyStatus failed: %v", err)
	}
	if !status.AllDone {
		t.Error("AllDone = false after logging all three, want true")
	}
}

func TestDailyStatus_DateIsUniqueKey(t *testing.T) {
	s := testStore(t)
	day := "2024-03-05"

	if _, err := LogSketch(s, LogSketchInput{Date: day, DurationMinutes: 10, Description: "first"}); err != nil {
		t.Fatalf("LogSketch failed: %v", err)
	}
	if _, err := LogSketch(s, LogSketchInput{Date: day, DurationMinutes: 25, Description: "second"}); err != nil {
		t.Fatalf("LogSketch failed: %v", err)
	}

	rec, err := DayInput(s, day)
	if err != nil {
		t.Fatalf("DayInput failed: %v", err)
	}
	if rec.SonicSketch.Description != "second" {
		t.Errorf("Description = %q, want the re-logged sketch to replace the first", rec.SonicSketch.Description)
	}
	if rec.SonicSketch.DurationMinutes != 25 {
		t.Errorf("DurationMinutes = %d, want 25", rec.SonicSketch.DurationMinutes)
	}
}
