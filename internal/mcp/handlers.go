package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dsgnrg/looptrack/internal/config"
	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/ops"
	"github.com/dsgnrg/looptrack/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store *store.Store
	cfg   *config.Config
	now   func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(s *store.Store, cfg *config.Config) *Handlers {
	return &Handlers{store: s, cfg: cfg, now: time.Now}
}

// Request types for each tool

// SketchRequest represents the arguments for loop_log_sketch.
type SketchRequest struct {
	Date        string   `json:"date,omitempty"`
	Duration    int      `json:"duration"`
	Description string   `json:"description"`
	AudioFile   *string  `json:"audio_file,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// MoodboardRequest represents the arguments for loop_log_moodboard.
type MoodboardRequest struct {
	Date         string   `json:"date,omitempty"`
	Images       []string `json:"images"`
	Theme        string   `json:"theme"`
	ColorPalette []string `json:"color_palette,omitempty"`
}

// LoreRequest represents the arguments for loop_log_lore.
type LoreRequest struct {
	Date                  string   `json:"date,omitempty"`
	Character             string   `json:"character"`
	Fragment              string   `json:"fragment"`
	NarrativeArc          string   `json:"narrative_arc"`
	WorldBuildingElements []string `json:"world_building_elements,omitempty"`
}

// ProcessRequest represents the arguments for loop_log_process.
type ProcessRequest struct {
	SampleSource      string `json:"sample_source"`
	RemixApproach     string `json:"remix_approach"`
	RenderFormat      string `json:"render_format"`
	EmotionTag        string `json:"emotion_tag"`
	Tempo             *int   `json:"tempo,omitempty"`
	LoreArcConnection string `json:"lore_arc_connection,omitempty"`
}

// OutputRequest represents the arguments for loop_log_output.
type OutputRequest struct {
	Title       string   `json:"title"`
	OutputType  string   `json:"output_type"`
	Category    string   `json:"category,omitempty"`
	FilePath    *string  `json:"file_path,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
}

// PluginEditRequest represents the arguments for loop_update_plugin.
type PluginEditRequest struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title,omitempty"`
	FilePath    *string   `json:"file_path,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// StatusRequest represents the arguments for loop_daily_status.
type StatusRequest struct {
	Date string `json:"date,omitempty"`
}

// Handler implementations

// HandleLogSketch handles the loop_log_sketch tool call.
func (h *Handlers) HandleLogSketch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SketchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LogSketch(h.store, ops.LogSketchInput{
		Date:            input.Date,
		DurationMinutes: input.Duration,
		Description:     input.Description,
		AudioFile:       input.AudioFile,
		Tags:            input.Tags,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleLogMoodboard handles the loop_log_moodboard tool call.
func (h *Handlers) HandleLogMoodboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MoodboardRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LogMoodboard(h.store, ops.LogMoodboardInput{
		Date:         input.Date,
		Images:       input.Images,
		Theme:        input.Theme,
		ColorPalette: input.ColorPalette,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleLogLore handles the loop_log_lore tool call.
func (h *Handlers) HandleLogLore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LoreRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LogLore(h.store, ops.LogLoreInput{
		Date:                  input.Date,
		Character:             input.Character,
		Fragment:              input.Fragment,
		NarrativeArc:          input.NarrativeArc,
		WorldBuildingElements: input.WorldBuildingElements,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleLogProcess handles the loop_log_process tool call.
func (h *Handlers) HandleLogProcess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProcessRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LogProcess(h.store, ops.LogProcessInput{
		SampleSource:      input.SampleSource,
		RemixApproach:     input.RemixApproach,
		RenderFormat:      input.RenderFormat,
		EmotionTag:        input.EmotionTag,
		Tempo:             input.Tempo,
		LoreArcConnection: input.LoreArcConnection,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleLogOutput handles the loop_log_output tool call.
func (h *Handlers) HandleLogOutput(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[OutputRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	opsInput := ops.LogOutputInput{
		Title:       input.Title,
		Kind:        input.OutputType,
		Category:    input.Category,
		FilePath:    input.FilePath,
		Description: input.Description,
		Tags:        input.Tags,
	}
	if input.ReleaseDate != "" {
		released, perr := time.Parse(time.RFC3339, input.ReleaseDate)
		if perr != nil {
			return errorResult(errors.NewInvalidRequest("release_date must be RFC 3339: " + perr.Error())), nil
		}
		opsInput.ReleaseDate = &released
	}

	result, err := ops.LogOutput(h.store, opsInput)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUpdatePlugin handles the loop_update_plugin tool call.
func (h *Handlers) HandleUpdatePlugin(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PluginEditRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdatePlugin(h.store, ops.UpdatePluginInput{
		ID:          input.ID,
		Title:       input.Title,
		FilePath:    input.FilePath,
		Description: input.Description,
		Tags:        input.Tags,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleListPlugins handles the loop_list_plugins tool call.
func (h *Handlers) HandleListPlugins(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plugins, err := ops.ListPlugins(h.store)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"plugins": plugins})
}

// HandleDailyStatus handles the loop_daily_status tool call.
func (h *Handlers) HandleDailyStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StatusRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DailyStatus(h.store, input.Date)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleWeeklyProgress handles the loop_weekly_progress tool call.
func (h *Handlers) HandleWeeklyProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.WeeklyProgress(h.store, h.cfg, h.now())
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleMonthlyProgress handles the loop_monthly_progress tool call.
func (h *Handlers) HandleMonthlyProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.MonthlyProgress(h.store, h.cfg, h.now())
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleStats handles the loop_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Stats(h.store, h.now())
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleReport handles the loop_report tool call.
func (h *Handlers) HandleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := ops.Report(h.store, h.cfg, h.now())
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"report": report})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed to avoid leaking file paths.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if lErr, ok := err.(*errors.LoopError); ok {
		errorObj := map[string]any{
			"code":    lErr.Code,
			"message": lErr.Message,
			"status":  lErr.Status,
		}
		if lErr.Code != errors.ErrInternal && lErr.Details != nil {
			errorObj["details"] = lErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
