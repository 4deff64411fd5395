package ops

import (
	"fmt"
	"strings"
	"time"

	"github.com/dsgnrg/looptrack/internal/config"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

func mark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// Report renders a plain-text creative loop report combining the daily,
// weekly, and monthly views for the given reference date.
func Report(s *store.Store, cfg *config.Config, today time.Time) (string, error) {
	daily, err := DailyStatus(s, today.Format(record.DateFormat))
	if err != nil {
		return "", err
	}
	weekly, err := WeeklyProgress(s, cfg, today)
	if err != nil {
		return "", err
	}
	monthly, err := MonthlyProgress(s, cfg, today)
	if err != nil {
		return "", err
	}
	stats, err := Stats(s, today)
	if err != nil {
		return "", err
	}

	track := func(met bool) string {
		if met {
			return "ON TRACK"
		}
		return "BEHIND"
	}
	loopState := "INCOMPLETE"
	if daily.AllDone {
		loopState = "COMPLETE"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATIVE LOOP REPORT\nGenerated: %s\n\n", today.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "TODAY'S INPUT LOOP (%s)\n", daily.Date)
	fmt.Fprintf(&b, "%s Sonic Sketch\n", mark(daily.SketchDone))
	fmt.Fprintf(&b, "%s Visual Moodboard\n", mark(daily.MoodboardDone))
	fmt.Fprintf(&b, "%s Lore Fragment\n", mark(daily.LoreDone))
	fmt.Fprintf(&b, "Daily Loop: %s\n\n", loopState)
	fmt.Fprintf(&b, "WEEKLY PROGRESS (week of %s)\n", weekly.WeekStart)
	fmt.Fprintf(&b, "Micro-Releases: %d/%d\n", weekly.MicroCount, weekly.TargetMicro)
	fmt.Fprintf(&b, "Plugin Builds:  %d/%d\n", weekly.PluginCount, weekly.TargetPlugins)
	fmt.Fprintf(&b, "Status: %s\n\n", track(weekly.GoalMet))
	fmt.Fprintf(&b, "MONTHLY PROGRESS (month of %s)\n", monthly.MonthStart)
	fmt.Fprintf(&b, "Major Releases: %d/%d\n", monthly.MajorCount, monthly.TargetMajor)
	fmt.Fprintf(&b, "Plugin Builds:  %d/%d\n", monthly.PluginCount, monthly.TargetPlugins)
	fmt.Fprintf(&b, "Status: %s\n\n", track(monthly.GoalMet))
	fmt.Fprintf(&b, "Current streak: %d days, completion rate %.1f%%\n", stats.CurrentStreak, stats.CompletionRate)

	return b.String(), nil
}
