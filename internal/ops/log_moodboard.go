package ops

import (
	"time"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// LogMoodboardInput contains parameters for the LogMoodboard operation.
type LogMoodboardInput struct {
	Date         string // optional, defaults to today
	Images       []string
	Theme        string
	ColorPalette []string
}

// LogMoodboardOutput contains the result of the LogMoodboard operation.
type LogMoodboardOutput struct {
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// LogMoodboard records the day's visual moodboard.
func LogMoodboard(s *store.Store, input LogMoodboardInput) (*LogMoodboardOutput, error) {
	if len(input.Images) == 0 {
		return nil, errors.NewInvalidRequest("at least one image is required")
	}
	if input.Theme == "" {
		return nil, errors.NewInvalidRequest("theme is required")
	}

	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, err
	}

	board := record.VisualMoodboard{
		Images:       input.Images,
		Theme:        input.Theme,
		ColorPalette: input.ColorPalette,
		Timestamp:    time.Now(),
	}
	if board.ColorPalette == nil {
		board.ColorPalette = []string{}
	}

	if err := upsertInput(s, date, func(day *record.DailyInput) {
		day.VisualMoodboard = &board
	}); err != nil {
		return nil, err
	}

	if err := appendActivity(s, date, "inputs", record.Activity{
		"type":  "visual_moodboard",
		"theme": input.Theme,
	}); err != nil {
		return nil, err
	}

	return &LogMoodboardOutput{Date: date, Timestamp: board.Timestamp}, nil
}
