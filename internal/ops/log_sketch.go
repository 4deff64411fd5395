package ops

import (
	"time"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// LogSketchInput contains parameters for the LogSketch operation.
type LogSketchInput struct {
	Date            string // optional, defaults to today
	DurationMinutes int
	Description     string
	AudioFile       *string
	Tags            []string
}

// LogSketchOutput contains the result of the LogSketch operation.
type LogSketchOutput struct {
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// LogSketch records the day's sonic sketch, creating the day's input
// record on first log and replacing any sketch already logged for it.
func LogSketch(s *store.Store, input LogSketchInput) (*LogSketchOutput, error) {
	if input.DurationMinutes <= 0 {
		return nil, errors.NewInvalidRequest("duration must be a positive number of minutes")
	}
	if input.Description == "" {
		return nil, errors.NewInvalidRequest("description is required")
	}

	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, err
	}

	sketch := record.SonicSketch{
		DurationMinutes: input.DurationMinutes,
		Description:     input.Description,
		AudioFile:       input.AudioFile,
		Tags:            cleanTags(input.Tags),
		Timestamp:       time.Now(),
	}

	if err := upsertInput(s, date, func(day *record.DailyInput) {
		day.SonicSketch = &sketch
	}); err != nil {
		return nil, err
	}

	if err := appendActivity(s, date, "inputs", record.Activity{
		"type":        "sonic_sketch",
		"duration":    input.DurationMinutes,
		"description": input.Description,
	}); err != nil {
		return nil, err
	}

	return &LogSketchOutput{Date: date, Timestamp: sketch.Timestamp}, nil
}
