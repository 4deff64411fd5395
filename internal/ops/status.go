package ops

import (
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// DailyStatusOutput reports which of the day's three exercises are done.
type DailyStatusOutput struct {
	Date          string `json:"date"`
	SketchDone    bool   `json:"sonic_sketch_complete"`
	MoodboardDone bool   `json:"visual_moodboard_complete"`
	LoreDone      bool   `json:"lore_fragment_complete"`
	AllDone       bool   `json:"daily_loop_complete"`
}

// DailyStatus checks the input loop for one day. A date with nothing
// logged reports everything not done rather than failing.
func DailyStatus(s *store.Store, date string) (*DailyStatusOutput, error) {
	date, err := resolveDate(date)
	if err != nil {
		return nil, err
	}

	day, _, err := store.Inputs(s).Get(date)
	if err != nil {
		return nil, err
	}

	return &DailyStatusOutput{
		Date:          date,
		SketchDone:    day.SonicSketch != nil,
		MoodboardDone: day.VisualMoodboard != nil,
		LoreDone:      day.LoreFragment != nil,
		AllDone:       day.Complete(),
	}, nil
}

// DayInput returns the raw input record for a day, for editing views.
// A date with nothing logged returns an empty record.
func DayInput(s *store.Store, date string) (*record.DailyInput, error) {
	date, err := resolveDate(date)
	if err != nil {
		return nil, err
	}

	day, ok, err := store.Inputs(s).Get(date)
	if err != nil {
		return nil, err
	}
	if !ok {
		day = record.DailyInput{Date: date}
	}
	return &day, nil
}
