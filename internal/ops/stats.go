package ops

import (
	"time"

	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// CurrentStreak counts consecutive complete days ending at today,
// walking backward one calendar day at a time. A day counts only when
// all three inputs are logged; an incomplete today yields 0 regardless
// of how many complete days precede it.
func CurrentStreak(s *store.Store, today time.Time) (int, error) {
	inputs, err := store.Inputs(s).All()
	if err != nil {
		return 0, err
	}

	streak := 0
	day := dayOf(today)
	for {
		rec, ok := inputs[day.Format(record.DateFormat)]
		if !ok || !rec.Complete() {
			return streak, nil
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// StatsOutput summarizes total logged activity.
type StatsOutput struct {
	TotalInputDays     int     `json:"total_input_days"`
	CompletedInputDays int     `json:"completed_input_days"`
	CompletionRate     float64 `json:"completion_rate"`
	TotalProcesses     int     `json:"total_processes"`
	TotalMicroReleases int     `json:"total_micro_releases"`
	TotalMajorReleases int     `json:"total_major_releases"`
	TotalVST3Plugins   int     `json:"total_vst3_plugins"`
	CurrentStreak      int     `json:"current_streak"`
}

// Stats computes totals across all collections. The completion rate is
// completed input days over total input days with anything logged, as a
// percentage; zero when no input days exist.
func Stats(s *store.Store, today time.Time) (*StatsOutput, error) {
	inputs, err := store.Inputs(s).All()
	if err != nil {
		return nil, err
	}
	processes, err := store.Processes(s).All()
	if err != nil {
		return nil, err
	}
	outputs, err := store.Outputs(s).All()
	if err != nil {
		return nil, err
	}

	out := &StatsOutput{
		TotalInputDays: len(inputs),
		TotalProcesses: len(processes),
	}

	for _, day := range inputs {
		if day.Complete() {
			out.CompletedInputDays++
		}
	}
	if out.TotalInputDays > 0 {
		out.CompletionRate = float64(out.CompletedInputDays) / float64(out.TotalInputDays) * 100
	}

	for _, o := range outputs {
		switch o.Kind {
		case record.KindMicro:
			out.TotalMicroReleases++
		case record.KindMajor:
			out.TotalMajorReleases++
		case record.KindVST3:
			out.TotalVST3Plugins++
		}
	}

	streak, err := CurrentStreak(s, today)
	if err != nil {
		return nil, err
	}
	out.CurrentStreak = streak

	return out, nil
}
