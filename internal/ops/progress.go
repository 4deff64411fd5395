package ops

import (
	"time"

	"github.com/dsgnrg/looptrack/internal/config"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// WeeklyProgressOutput reports output counts against the weekly goal.
type WeeklyProgressOutput struct {
	WeekStart     string                  `json:"week_start"`
	MicroCount    int                     `json:"micro_releases_this_week"`
	PluginCount   int                     `json:"vst3_plugins_this_week"`
	TargetMicro   int                     `json:"target_micro_releases"`
	TargetPlugins int                     `json:"target_vst3_plugins"`
	GoalMet       bool                    `json:"weekly_goal_met"`
	Micros        []record.CreativeOutput `json:"micro_releases"`
	Plugins       []record.CreativeOutput `json:"vst3_plugins"`
}

// WeeklyProgress counts micro releases and plugin builds with a release
// date on or after the most recent Monday on/before today. The caller
// supplies today so tests can inject a deterministic reference date.
func WeeklyProgress(s *store.Store, cfg *config.Config, today time.Time) (*WeeklyProgressOutput, error) {
	weekStart := weekStartOf(today)

	outputs, err := store.Outputs(s).All()
	if err != nil {
		return nil, err
	}

	out := &WeeklyProgressOutput{
		WeekStart:     weekStart.Format(record.DateFormat),
		TargetMicro:   cfg.WeeklyMicroTarget,
		TargetPlugins: cfg.WeeklyPluginTarget,
		Micros:        []record.CreativeOutput{},
		Plugins:       []record.CreativeOutput{},
	}

	for _, o := range outputs {
		if dayOf(o.ReleaseDate).Before(weekStart) {
			continue
		}
		switch o.Kind {
		case record.KindMicro:
			out.Micros = append(out.Micros, o)
		case record.KindVST3:
			out.Plugins = append(out.Plugins, o)
		}
	}

	out.MicroCount = len(out.Micros)
	out.PluginCount = len(out.Plugins)
	out.GoalMet = out.MicroCount >= cfg.WeeklyMicroTarget && out.PluginCount >= cfg.WeeklyPluginTarget
	return out, nil
}

// MonthlyProgressOutput reports output counts against the monthly goal.
type MonthlyProgressOutput struct {
	MonthStart    string                  `json:"month_start"`
	MajorCount    int                     `json:"major_releases_this_month"`
	PluginCount   int                     `json:"vst3_plugins_this_month"`
	TargetMajor   int                     `json:"target_major_releases"`
	TargetPlugins int                     `json:"target_vst3_plugins"`
	GoalMet       bool                    `json:"monthly_goal_met"`
	Majors        []record.CreativeOutput `json:"major_releases"`
	Plugins       []record.CreativeOutput `json:"vst3_plugins"`
}

// MonthlyProgress counts major releases and plugin builds with a release
// date in today's month.
func MonthlyProgress(s *store.Store, cfg *config.Config, today time.Time) (*MonthlyProgressOutput, error) {
	monthStart := monthStartOf(today)

	outputs, err := store.Outputs(s).All()
	if err != nil {
		return nil, err
	}

	out := &MonthlyProgressOutput{
		MonthStart:    monthStart.Format(record.DateFormat),
		TargetMajor:   cfg.MonthlyMajorTarget,
		TargetPlugins: cfg.MonthlyPluginTarget,
		Majors:        []record.CreativeOutput{},
		Plugins:       []record.CreativeOutput{},
	}

	for _, o := range outputs {
		if dayOf(o.ReleaseDate).Before(monthStart) {
			continue
		}
		switch o.Kind {
		case record.KindMajor:
			out.Majors = append(out.Majors, o)
		case record.KindVST3:
			out.Plugins = append(out.Plugins, o)
		}
	}

	out.MajorCount = len(out.Majors)
	out.PluginCount = len(out.Plugins)
	out.GoalMet = out.MajorCount >= cfg.MonthlyMajorTarget && out.PluginCount >= cfg.MonthlyPluginTarget
	return out, nil
}
