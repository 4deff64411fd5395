package ops

import (
	"testing"

	"github.com/dsgnrg/looptrack/internal/config"
)

// 2024-01-01 is a Monday.

func TestWeeklyProgress_GoalMet(t *testing.T) {
	s := testStore(t)
	cfg := config.DefaultConfig()

	released := date("2024-01-02")
	if _, err := LogOutput(s, LogOutputInput{Title: "beat drop", Kind: "micro", Category: "beat", ReleaseDate: timePtr(released)}); err != nil {
		t.Fatalf("LogOutput failed: %v", err)
	}
	if _, err := LogOutput(s, LogOutputInput{Title: "filter plugin", Kind: "vst3", ReleaseDate: timePtr(released)}); err != nil {
		t.Fatalf("LogOutput failed: %v", err)
	}

	progress, err := WeeklyProgress(s, cfg, date("2024-01-03"))
	if err != nil {
		t.Fatalf("WeeklyProgress failed: %v", err)
	}
	if progress.WeekStart != "2024-01-01" {
		t.Errorf("WeekStart = %q, want %q", progress.WeekStart, "2024-01-01")
	}
	if !progress.GoalMet {
		t.Errorf("GoalMet = false with %d micro / %d plugins, want true", progress.MicroCount, progress.PluginCount)
	}
}

func TestWeeklyProgress_MicroAloneDoesNotMeetGoal(t *testing.T) {
	s := testStore(t)
	cfg := config.DefaultConfig()

	if _, err := LogOutput(s, LogOutputInput{Title: "beat drop", Kind: "micro", Category: "beat", ReleaseDate: timePtr(date("2024-01-02"))}); err != nil {
		t.Fatalf("LogOutput failed: %v", err)
	}

	progress, err := WeeklyProgress(s, cfg, date("2024-01-03"))
	if err != nil {
		t.Fatalf("WeeklyProgress failed: %v", err)
	}
	if progress.GoalMet {
		t.Error("GoalMet = true without a plugin build, want false")
	}
}

func TestWeeklyProgress_IgnoresEarlierWeeks(t *testing.T) {
	s := testStore(t)
	cfg := config.DefaultConfig()

	// Sunday before the week under test.
	if _, err := LogOutput(s, LogOutputInput{Title: "old beat", Kind: "micro", ReleaseDate: timePtr(date("2023-12-31"))}); err != nil {
		t.Fatalf("LogOutput failed: %v", err)
	}

	progress, err := WeeklyProgress(s, cfg, date("2024-01-03"))
	if err != nil {
		t.Fatalf("WeeklyProgress failed: %v", err)
	}
	if progress.MicroCount != 0 {
		t.Errorf("MicroCount = %d, want 0", progress.MicroCount)
	}
}

func TestWeeklyProgress_WeekStartsOnMonday(t *testing.T) {
	s := testStore(t)
	cfg := config.DefaultConfig()

	for _, tc := range []struct {
		today string
		want  string
	}{
		{"2024-01-01", "2024-01-01"}, // Monday maps to itself
		{"2024-01-07", "2024-01-01"}, // Sunday maps back to Monday
		{"2024-01-08", "2024-01-08"},
	} {
		progress, err := WeeklyProgress(s, cfg, date(tc.today))
		if err != nil {
			t.Fatalf("WeeklyProgress(%s) failed: %v", tc.today, err)
		}
		if progress.WeekStart != tc.want {
			t.Errorf("WeekStart(%s) = %q, want %q", tc.today, progress.WeekStart, tc.want)
		}
	}
}

func TestMonthlyProgress_GoalMet(t *testing.T) {
	s := testStore(t)
	cfg := config.DefaultConfig()

	if _, err := LogOutput(s, LogOutputInput{Title: "album", Kind: "major", Category: "track", ReleaseDate: timePtr(date("2024-01-05"))}); err != nil {
		t.Fatalf("LogOutput failed: %v", err)
	}
	for _, d := range []string{"2024-01-03", "2024-01-10", "2024-01-17", "2024-01-24"} {
		if _, err := LogOutput(s, LogOutputInput{Title: "plugin " + d, Kind: "vst3", ReleaseDate: timePtr(date(d))}); err != nil {
			t.Fatalf("LogOutput failed: %v", err)
		}
	}

	progress, err := MonthlyProgress(s, cfg, date("2024-01-28"))
	if err != nil {
		t.Fatalf("MonthlyProgress failed: %v", err)
	}
	if progress.MonthStart != "2024-01-01" {
		t.Errorf("MonthStart = %q, want %q", progress.MonthStart, "2024-01-01")
	}
	if !progress.GoalMet {
		t.Errorf("GoalMet = false with %d major / %d plugins, want true", progress.MajorCount, progress.PluginCount)
	}
}

func TestMonthlyProgress_ThreePluginsMissGoal(t *testing.T) {
	s := testStore(t)
	cfg := config.DefaultConfig()

	if _, err := LogOutput(s, LogOutputInput{Title: "album", Kind: "major", ReleaseDate: timePtr(date("2024-01-05"))}); err != nil {
		t.Fatalf("LogOutput failed: %v", err)
	}
	for _, d := range []string{"2024-01-03", "2024-01-10", "2024-01-17"} {
		if _, err := LogOutput(s, LogOutputInput{Title: "plugin " + d, Kind: "vst3", ReleaseDate: timePtr(date(d))}); err != nil {
			t.Fatalf("LogOutput failed: %v", err)
		}
	}

	progress, err := MonthlyProgress(s, cfg, date("2024-01-28"))
	if err != nil {
		t.Fatalf("MonthlyProgress failed: %v", err)
	}
	if progress.GoalMet {
		t.Errorf("GoalMet = true with only %d plugins, want false", progress.PluginCount)
	}
}

func TestProgress_ConfigurableTargets(t *testing.T) {
	s := testStore(t)
	cfg := config.DefaultConfig()
	cfg.WeeklyMicroTarget = 2

	if _, err := LogOutput(s, LogOutputInput{Title: "beat", Kind: "micro", ReleaseDate: timePtr(date("2024-01-02"))}); err != nil {
		t.Fatalf("LogOutput failed: %v", err)
	}
	if _, err := LogOutput(s, LogOutputInput{Title: "plugin", Kind: "vst3", ReleaseDate: timePtr(date("2024-01-02"))}); err != nil {
		t.Fatalf("LogOutput failed: %v", err)
	}

	progress, err := WeeklyProgress(s, cfg, date("2024-01-03"))
	if err != nil {
		t.Fatalf("WeeklyProgress failed: %v", err)
	}
	if progress.GoalMet {
		t.Error("GoalMet = true with a raised micro target, want false")
	}
}
