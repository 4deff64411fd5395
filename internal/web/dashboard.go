package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"github.com/dsgnrg/looptrack/internal/ops"
	"github.com/dsgnrg/looptrack/internal/record"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type dashboardData struct {
	Date       string
	Daily      *ops.DailyStatusOutput
	Weekly     *ops.WeeklyProgressOutput
	Monthly    *ops.MonthlyProgressOutput
	Stats      *ops.StatsOutput
	ReportHTML template.HTML
	LoreHTML   template.HTML
}

// Dashboard handles GET /, the single-page status view.
func (h *Handlers) Dashboard(c *gin.Context) {
	now := h.now()

	daily, err := ops.DailyStatus(h.store, "")
	if err != nil {
		h.renderError(c, err)
		return
	}
	weekly, err := ops.WeeklyProgress(h.store, h.cfg, now)
	if err != nil {
		h.renderError(c, err)
		return
	}
	monthly, err := ops.MonthlyProgress(h.store, h.cfg, now)
	if err != nil {
		h.renderError(c, err)
		return
	}
	stats, err := ops.Stats(h.store, now)
	if err != nil {
		h.renderError(c, err)
		return
	}
	report, err := ops.Report(h.store, h.cfg, now)
	if err != nil {
		h.renderError(c, err)
		return
	}
	lore, err := recentLore(h.store, 5)
	if err != nil {
		h.renderError(c, err)
		return
	}

	data := dashboardData{
		Date:       now.Format(record.DateFormat),
		Daily:      daily,
		Weekly:     weekly,
		Monthly:    monthly,
		Stats:      stats,
		ReportHTML: renderMarkdown("```\n" + report + "```"),
		LoreHTML:   renderMarkdown(loreMarkdown(lore)),
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		h.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// loreMarkdown formats lore fragments as a markdown section list.
func loreMarkdown(fragments []record.LoreFragment) string {
	if len(fragments) == 0 {
		return "_No lore fragments logged yet._"
	}
	var b strings.Builder
	for _, f := range fragments {
		fmt.Fprintf(&b, "### %s (%s)\n\n%s\n\n", f.Character, f.NarrativeArc, f.Fragment)
	}
	return b.String()
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
