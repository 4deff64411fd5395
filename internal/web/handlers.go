package web

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsgnrg/looptrack/internal/config"
	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/logger"
	"github.com/dsgnrg/looptrack/internal/ops"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// Handlers contains HTTP route handlers for the API.
type Handlers struct {
	store *store.Store
	cfg   *config.Config
	log   *logger.Logger
	now   func() time.Time // injectable for tests
}

// renderError maps a LoopError to its status and the shared error body.
// Anything else becomes a 500.
func (h *Handlers) renderError(c *gin.Context, err error) {
	lErr := errors.From(err)
	if h.log != nil && lErr.Status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.Request.URL.Path, "error", err.Error())
	}
	c.JSON(lErr.Status, gin.H{
		"error": gin.H{
			"code":    string(lErr.Code),
			"message": lErr.Message,
		},
	})
}

func (h *Handlers) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.renderError(c, errors.NewInvalidRequest("invalid JSON body: "+err.Error()))
		return false
	}
	return true
}

// DailyStatus handles GET /api/status/daily.
func (h *Handlers) DailyStatus(c *gin.Context) {
	out, err := ops.DailyStatus(h.store, c.Query("date"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// WeeklyProgress handles GET /api/status/weekly.
func (h *Handlers) WeeklyProgress(c *gin.Context) {
	out, err := ops.WeeklyProgress(h.store, h.cfg, h.now())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// MonthlyProgress handles GET /api/status/monthly.
func (h *Handlers) MonthlyProgress(c *gin.Context) {
	out, err := ops.MonthlyProgress(h.store, h.cfg, h.now())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Stats handles GET /api/stats.
func (h *Handlers) Stats(c *gin.Context) {
	out, err := ops.Stats(h.store, h.now())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Report handles GET /api/report.
func (h *Handlers) Report(c *gin.Context) {
	report, err := ops.Report(h.store, h.cfg, h.now())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// AllData handles GET /api/data/all, the dashboard's combined view.
func (h *Handlers) AllData(c *gin.Context) {
	daily, err := ops.DailyStatus(h.store, "")
	if err != nil {
		h.renderError(c, err)
		return
	}
	weekly, err := ops.WeeklyProgress(h.store, h.cfg, h.now())
	if err != nil {
		h.renderError(c, err)
		return
	}
	monthly, err := ops.MonthlyProgress(h.store, h.cfg, h.now())
	if err != nil {
		h.renderError(c, err)
		return
	}
	stats, err := ops.Stats(h.store, h.now())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"daily":   daily,
		"weekly":  weekly,
		"monthly": monthly,
		"stats":   stats,
	})
}

// TodayInput handles GET /api/input/today, the editing view's raw record.
func (h *Handlers) TodayInput(c *gin.Context) {
	out, err := ops.DayInput(h.store, "")
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type sketchRequest struct {
	Date        string   `json:"date"`
	Duration    int      `json:"duration"`
	Description string   `json:"description"`
	AudioFile   *string  `json:"audio_file"`
	Tags        []string `json:"tags"`
}

// LogSketch handles POST /api/input/sketch.
func (h *Handlers) LogSketch(c *gin.Context) {
	var req sketchRequest
	if !h.bind(c, &req) {
		return
	}
	out, err := ops.LogSketch(h.store, ops.LogSketchInput{
		Date:            req.Date,
		DurationMinutes: req.Duration,
		Description:     req.Description,
		AudioFile:       req.AudioFile,
		Tags:            req.Tags,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": out.Date, "timestamp": out.Timestamp})
}

type moodboardRequest struct {
	Date         string   `json:"date"`
	Images       []string `json:"images"`
	Theme        string   `json:"theme"`
	ColorPalette []string `json:"color_palette"`
}

// LogMoodboard handles POST /api/input/visual.
func (h *Handlers) LogMoodboard(c *gin.Context) {
	var req moodboardRequest
	if !h.bind(c, &req) {
		return
	}
	out, err := ops.LogMoodboard(h.store, ops.LogMoodboardInput{
		Date:         req.Date,
		Images:       req.Images,
		Theme:        req.Theme,
		ColorPalette: req.ColorPalette,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": out.Date, "timestamp": out.Timestamp})
}

type loreRequest struct {
	Date                  string   `json:"date"`
	Character             string   `json:"character"`
	Fragment              string   `json:"fragment"`
	NarrativeArc          string   `json:"narrative_arc"`
	WorldBuildingElements []string `json:"world_building_elements"`
}

// LogLore handles POST /api/input/lore.
func (h *Handlers) LogLore(c *gin.Context) {
	var req loreRequest
	if !h.bind(c, &req) {
		return
	}
	out, err := ops.LogLore(h.store, ops.LogLoreInput{
		Date:                  req.Date,
		Character:             req.Character,
		Fragment:              req.Fragment,
		NarrativeArc:          req.NarrativeArc,
		WorldBuildingElements: req.WorldBuildingElements,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": out.Date, "timestamp": out.Timestamp})
}

type processRequest struct {
	SampleSource      string `json:"sample_source"`
	RemixApproach     string `json:"remix_approach"`
	RenderFormat      string `json:"render_format"`
	EmotionTag        string `json:"emotion_tag"`
	Tempo             *int   `json:"tempo"`
	LoreArcConnection string `json:"lore_arc_connection"`
}

// LogProcess handles POST /api/process.
func (h *Handlers) LogProcess(c *gin.Context) {
	var req processRequest
	if !h.bind(c, &req) {
		return
	}
	out, err := ops.LogProcess(h.store, ops.LogProcessInput{
		SampleSource:      req.SampleSource,
		RemixApproach:     req.RemixApproach,
		RenderFormat:      req.RenderFormat,
		EmotionTag:        req.EmotionTag,
		Tempo:             req.Tempo,
		LoreArcConnection: req.LoreArcConnection,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "process_id": out.ProcessID})
}

type outputRequest struct {
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	FilePath    *string    `json:"file_path"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	ReleaseDate *time.Time `json:"release_date"`
}

// logOutput returns the handler for POST /api/output/<kind>; the kind
// comes from the route, not the body.
func (h *Handlers) logOutput(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req outputRequest
		if !h.bind(c, &req) {
			return
		}
		out, err := ops.LogOutput(h.store, ops.LogOutputInput{
			Title:       req.Title,
			Kind:        kind,
			Category:    req.Category,
			FilePath:    req.FilePath,
			Description: req.Description,
			Tags:        req.Tags,
			ReleaseDate: req.ReleaseDate,
		})
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "output_id": out.OutputID})
	}
}

type pluginEditRequest struct {
	Title       *string   `json:"title"`
	FilePath    *string   `json:"file_path"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

// UpdatePlugin handles PUT /api/output/vst3/:id.
func (h *Handlers) UpdatePlugin(c *gin.Context) {
	var req pluginEditRequest
	if !h.bind(c, &req) {
		return
	}
	out, err := ops.UpdatePlugin(h.store, ops.UpdatePluginInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		FilePath:    req.FilePath,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": out.ID, "modified_date": out.ModifiedAt})
}

// ListPlugins handles GET /api/output/vst3.
func (h *Handlers) ListPlugins(c *gin.Context) {
	plugins, err := ops.ListPlugins(h.store)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plugins": plugins})
}

// MonthCalendar handles GET /api/calendar/:year/:month.
func (h *Handlers) MonthCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.renderError(c, errors.NewInvalidRequest("year must be an integer"))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		h.renderError(c, errors.NewInvalidRequest("month must be an integer"))
		return
	}
	cal, opErr := ops.MonthActivities(h.store, year, month)
	if opErr != nil {
		h.renderError(c, opErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "calendar": cal})
}

// DayCalendar handles GET /api/calendar/day/:date.
func (h *Handlers) DayCalendar(c *gin.Context) {
	acts, err := ops.DayActivities(h.store, c.Param("date"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "activities": acts})
}

// GetTasks handles GET /api/tasks/:type.
func (h *Handlers) GetTasks(c *gin.Context) {
	tasks, err := ops.GetTasks(h.store, c.Param("type"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

type taskRequest struct {
	Text      string  `json:"text"`
	Priority  string  `json:"priority"`
	Completed *bool   `json:"completed"`
	NewText   *string `json:"new_text"`
}

// AddTask handles POST /api/tasks/:type.
func (h *Handlers) AddTask(c *gin.Context) {
	var req taskRequest
	if !h.bind(c, &req) {
		return
	}
	task, err := ops.AddTask(h.store, ops.AddTaskInput{
		Type:     c.Param("type"),
		Text:     req.Text,
		Priority: req.Priority,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// UpdateTask handles PUT /api/tasks/:type/:id.
func (h *Handlers) UpdateTask(c *gin.Context) {
	var req taskRequest
	if !h.bind(c, &req) {
		return
	}
	input := ops.UpdateTaskInput{
		Type:      c.Param("type"),
		ID:        c.Param("id"),
		Completed: req.Completed,
		Text:      req.NewText,
	}
	if req.Priority != "" {
		input.Priority = &req.Priority
	}
	task, err := ops.UpdateTask(h.store, input)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// DeleteTask handles DELETE /api/tasks/:type/:id.
func (h *Handlers) DeleteTask(c *gin.Context) {
	if err := ops.DeleteTask(h.store, c.Param("type"), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListPayments handles GET /api/payments.
func (h *Handlers) ListPayments(c *gin.Context) {
	payments, err := ops.ListPayments(h.store)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}

type paymentRequest struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Notes    string  `json:"notes"`
}

// AddPayment handles POST /api/payments.
func (h *Handlers) AddPayment(c *gin.Context) {
	var req paymentRequest
	if !h.bind(c, &req) {
		return
	}
	payment, err := ops.AddPayment(h.store, ops.AddPaymentInput{
		Name:     req.Name,
		Amount:   req.Amount,
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payment": payment})
}

// UpdatePayment handles PUT /api/payments/:id.
func (h *Handlers) UpdatePayment(c *gin.Context) {
	var req paymentRequest
	if !h.bind(c, &req) {
		return
	}
	payment, err := ops.UpdatePayment(h.store, ops.UpdatePaymentInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Amount:   req.Amount,
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payment": payment})
}

// DeletePayment handles DELETE /api/payments/:id.
func (h *Handlers) DeletePayment(c *gin.Context) {
	if err := ops.DeletePayment(h.store, c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// recentLore collects the newest lore fragments for the dashboard, up to
// limit, newest date first.
func recentLore(s *store.Store, limit int) ([]record.LoreFragment, error) {
	inputs, err := store.Inputs(s).All()
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(inputs))
	for d, day := range inputs {
		if day.LoreFragment != nil {
			dates = append(dates, d)
		}
	}
	// Date keys sort lexicographically in chronological order.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	out := make([]record.LoreFragment, 0, limit)
	for _, d := range dates {
		if len(out) == limit {
			break
		}
		out = append(out, *inputs[d].LoreFragment)
	}
	return out, nil
}
