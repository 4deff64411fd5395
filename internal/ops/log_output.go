package ops

import (
	"fmt"
	"time"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// LogOutputInput contains parameters for the LogOutput operation.
type LogOutputInput struct {
	Title       string
	Kind        string // micro | major | vst3
	Category    string
	FilePath    *string
	Description string
	Tags        []string
	ReleaseDate *time.Time // defaults to now
}

// LogOutputOutput contains the result of the LogOutput operation.
type LogOutputOutput struct {
	OutputID    string    `json:"output_id"`
	ReleaseDate time.Time `json:"release_date"`
}

// LogOutput records a released artifact. Ids are "<kind>_<n>" with n =
// count of existing outputs of that kind + 1; outputs cannot be deleted,
// so ids are never reused.
func LogOutput(s *store.Store, input LogOutputInput) (*LogOutputOutput, error) {
	if input.Title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}
	kind, ok := record.ParseOutputKind(input.Kind)
	if !ok {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("output kind must be one of: micro, major, vst3 (got %q)", input.Kind))
	}

	category := input.Category
	if kind == record.KindVST3 && category == "" {
		category = "plugin"
	}

	released := time.Now()
	if input.ReleaseDate != nil {
		released = *input.ReleaseDate
	}

	outputs := store.Outputs(s)
	existing, err := outputs.All()
	if err != nil {
		return nil, err
	}
	n := 1
	for _, o := range existing {
		if o.Kind == kind {
			n++
		}
	}
	id := fmt.Sprintf("%s_%d", kind, n)

	out := record.CreativeOutput{
		Title:       input.Title,
		Kind:        kind,
		Category:    category,
		FilePath:    input.FilePath,
		Description: input.Description,
		ReleaseDate: released,
		Tags:        cleanTags(input.Tags),
	}

	if err := outputs.Put(id, out); err != nil {
		return nil, err
	}

	if err := appendActivity(s, released.Format(record.DateFormat), "outputs", record.Activity{
		"type":        string(kind),
		"title":       input.Title,
		"description": input.Description,
	}); err != nil {
		return nil, err
	}

	return &LogOutputOutput{OutputID: id, ReleaseDate: released}, nil
}
