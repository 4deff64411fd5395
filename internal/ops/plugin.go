package ops

import (
	"sort"
	"time"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// UpdatePluginInput contains parameters for the UpdatePlugin operation.
// Nil fields are left unchanged.
type UpdatePluginInput struct {
	ID          string
	Title       *string
	FilePath    *string
	Description *string
	Tags        *[]string
}

// UpdatePluginOutput contains the result of the UpdatePlugin operation.
type UpdatePluginOutput struct {
	ID         string    `json:"id"`
	ModifiedAt time.Time `json:"modified_date"`
}

// UpdatePlugin edits an existing plugin build entry. Plugin builds are
// the only output kind that supports editing.
func UpdatePlugin(s *store.Store, input UpdatePluginInput) (*UpdatePluginOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	outputs := store.Outputs(s)
	out, ok, err := outputs.Get(input.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFound("plugin", input.ID)
	}
	if out.Kind != record.KindVST3 {
		return nil, errors.NewInvalidRequest(input.ID + " is not a plugin build")
	}

	if input.Title != nil {
		out.Title = *input.Title
	}
	if input.FilePath != nil {
		out.FilePath = input.FilePath
	}
	if input.Description != nil {
		out.Description = *input.Description
	}
	if input.Tags != nil {
		out.Tags = cleanTags(*input.Tags)
	}

	now := time.Now()
	out.ModifiedAt = &now

	if err := outputs.Put(input.ID, out); err != nil {
		return nil, err
	}

	return &UpdatePluginOutput{ID: input.ID, ModifiedAt: now}, nil
}

// PluginItem is one row in a plugin listing.
type PluginItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FilePath    *string   `json:"file_path,omitempty"`
	ReleaseDate time.Time `json:"release_date"`
	Tags        []string  `json:"tags"`
}

// ListPlugins returns all plugin builds, newest release first.
func ListPlugins(s *store.Store) ([]PluginItem, error) {
	outputs, err := store.Outputs(s).All()
	if err != nil {
		return nil, err
	}

	items := make([]PluginItem, 0)
	for id, o := range outputs {
		if o.Kind != record.KindVST3 {
			continue
		}
		items = append(items, PluginItem{
			ID:          id,
			Title:       o.Title,
			Description: o.Description,
			FilePath:    o.FilePath,
			ReleaseDate: o.ReleaseDate,
			Tags:        o.Tags,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ReleaseDate.After(items[j].ReleaseDate)
	})
	return items, nil
}
