package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the creative loop tool set. Argument names match
// the REST API's JSON field names so clients can share payloads.

var stringItems = map[string]any{"type": "string"}

var logSketchToolDef = mcp.NewTool("loop_log_sketch",
	mcp.WithDescription("Log the day's sonic sketch: a short focused audio exercise. Replaces any sketch already logged for the date."),
	mcp.WithString("date", mcp.Description("Date in YYYY-MM-DD form; defaults to today")),
	mcp.WithNumber("duration", mcp.Required(), mcp.Description("Minutes spent on the sketch; must be positive")),
	mcp.WithString("description", mcp.Required(), mcp.Description("What was sketched")),
	mcp.WithString("audio_file", mcp.Description("Stored path of an uploaded audio file")),
	mcp.WithArray("tags", mcp.Description("Freeform tags"), mcp.Items(stringItems)),
)

var logMoodboardToolDef = mcp.NewTool("loop_log_moodboard",
	mcp.WithDescription("Log the day's visual moodboard: reference images around a theme."),
	mcp.WithString("date", mcp.Description("Date in YYYY-MM-DD form; defaults to today")),
	mcp.WithArray("images", mcp.Required(), mcp.Description("Image paths or URLs; at least one"), mcp.Items(stringItems)),
	mcp.WithString("theme", mcp.Required(), mcp.Description("The board's unifying theme")),
	mcp.WithArray("color_palette", mcp.Description("Dominant colors"), mcp.Items(stringItems)),
)

var logLoreToolDef = mcp.NewTool("loop_log_lore",
	mcp.WithDescription("Log the day's lore fragment: a piece of world narrative tied to a character and arc."),
	mcp.WithString("date", mcp.Description("Date in YYYY-MM-DD form; defaults to today")),
	mcp.WithString("character", mcp.Required(), mcp.Description("Character the fragment centers on")),
	mcp.WithString("fragment", mcp.Required(), mcp.Description("The narrative text")),
	mcp.WithString("narrative_arc", mcp.Required(), mcp.Description("Arc the fragment belongs to")),
	mcp.WithArray("world_building_elements", mcp.Description("World elements introduced or referenced"), mcp.Items(stringItems)),
)

var logProcessToolDef = mcp.NewTool("loop_log_process",
	mcp.WithDescription("Record a sample-to-render creative process session."),
	mcp.WithString("sample_source", mcp.Required(), mcp.Description("Where the source material came from")),
	mcp.WithString("remix_approach", mcp.Required(), mcp.Description("How the material was transformed")),
	mcp.WithString("render_format", mcp.Required(), mcp.Description("Output format of the render")),
	mcp.WithString("emotion_tag", mcp.Required(), mcp.Description("Emotional register of the result")),
	mcp.WithNumber("tempo", mcp.Description("Tempo in BPM")),
	mcp.WithString("lore_arc_connection", mcp.Description("Narrative arc this session feeds")),
)

var logOutputToolDef = mcp.NewTool("loop_log_output",
	mcp.WithDescription("Record a released artifact: a micro release, major release, or VST3 plugin build."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Release title")),
	mcp.WithString("output_type", mcp.Required(), mcp.Description("One of: micro, major, vst3"),
		mcp.Enum("micro", "major", "vst3")),
	mcp.WithString("category", mcp.Description("Release category; vst3 defaults to \"plugin\"")),
	mcp.WithString("file_path", mcp.Description("Stored path of the artifact")),
	mcp.WithString("description", mcp.Description("Release notes")),
	mcp.WithArray("tags", mcp.Description("Freeform tags"), mcp.Items(stringItems)),
	mcp.WithString("release_date", mcp.Description("RFC 3339 release time; defaults to now")),
)

var updatePluginToolDef = mcp.NewTool("loop_update_plugin",
	mcp.WithDescription("Edit an existing VST3 plugin build entry. Omitted fields are left unchanged."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Plugin id, e.g. vst3_1")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("file_path", mcp.Description("New artifact path")),
	mcp.WithString("description", mcp.Description("New description")),
	mcp.WithArray("tags", mcp.Description("Replacement tag list"), mcp.Items(stringItems)),
)

var listPluginsToolDef = mcp.NewTool("loop_list_plugins",
	mcp.WithDescription("List all VST3 plugin builds, newest release first."),
)

var dailyStatusToolDef = mcp.NewTool("loop_daily_status",
	mcp.WithDescription("Check which of the day's three inputs (sketch, moodboard, lore) are logged."),
	mcp.WithString("date", mcp.Description("Date in YYYY-MM-DD form; defaults to today")),
)

var weeklyProgressToolDef = mcp.NewTool("loop_weekly_progress",
	mcp.WithDescription("Count this week's micro releases and plugin builds against the weekly goal. Weeks start Monday."),
)

var monthlyProgressToolDef = mcp.NewTool("loop_monthly_progress",
	mcp.WithDescription("Count this month's major releases and plugin builds against the monthly goal."),
)

var statsToolDef = mcp.NewTool("loop_stats",
	mcp.WithDescription("Summarize all logged activity: input days, completion rate, output totals, current streak."),
)

var reportToolDef = mcp.NewTool("loop_report",
	mcp.WithDescription("Render the full plain-text creative loop report for today."),
)
