package ops

import (
	"time"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// LogLoreInput contains parameters for the LogLore operation.
type LogLoreInput struct {
	Date                  string // optional, defaults to today
	Character             string
	Fragment              string
	NarrativeArc          string
	WorldBuildingElements []string
}

// LogLoreOutput contains the result of the LogLore operation.
type LogLoreOutput struct {
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// LogLore records the day's lore fragment.
func LogLore(s *store.Store, input LogLoreInput) (*LogLoreOutput, error) {
	if input.Character == "" {
		return nil, errors.NewInvalidRequest("character is required")
	}
	if input.Fragment == "" {
		return nil, errors.NewInvalidRequest("fragment is required")
	}
	if input.NarrativeArc == "" {
		return nil, errors.NewInvalidRequest("narrative_arc is required")
	}

	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, err
	}

	lore := record.LoreFragment{
		Character:             input.Character,
		Fragment:              input.Fragment,
		NarrativeArc:          input.NarrativeArc,
		WorldBuildingElements: input.WorldBuildingElements,
		Timestamp:             time.Now(),
	}
	if lore.WorldBuildingElements == nil {
		lore.WorldBuildingElements = []string{}
	}

	if err := upsertInput(s, date, func(day *record.DailyInput) {
		day.LoreFragment = &lore
	}); err != nil {
		return nil, err
	}

	if err := appendActivity(s, date, "inputs", record.Activity{
		"type":          "lore_fragment",
		"character":     input.Character,
		"narrative_arc": input.NarrativeArc,
	}); err != nil {
		return nil, err
	}

	return &LogLoreOutput{Date: date, Timestamp: lore.Timestamp}, nil
}
