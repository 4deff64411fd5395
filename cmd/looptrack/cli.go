package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dsgnrg/looptrack/internal/config"
	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/logger"
	"github.com/dsgnrg/looptrack/internal/ops"
	"github.com/dsgnrg/looptrack/internal/store"
	"github.com/dsgnrg/looptrack/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(s *store.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "looptrack",
		Usage:   "Daily creative loop tracker",
		Version: Version,
		Commands: []*cli.Command{
			inputCmd(s),
			processCmd(s),
			outputCmd(s),
			pluginCmd(s),
			statusCmd(s, cfg),
			taskCmd(s),
			paymentCmd(s),
			serveCmd(s, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// inputCmd groups the three daily input exercises.
func inputCmd(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "input",
		Usage: "Log a daily input exercise",
		Subcommands: []*cli.Command{
			{
				Name:  "sketch",
				Usage: "Log the day's sonic sketch",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "Date (YYYY-MM-DD, defaults to today)"},
					&cli.IntFlag{Name: "duration", Aliases: []string{"d"}, Required: true, Usage: "Session length in minutes"},
					&cli.StringFlag{Name: "description", Aliases: []string{"m"}, Required: true, Usage: "What was sketched"},
					&cli.StringFlag{Name: "audio-file", Usage: "Path to the bounced audio"},
					&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
				},
				Action: func(c *cli.Context) error {
					input := ops.LogSketchInput{
						Date:            c.String("date"),
						DurationMinutes: c.Int("duration"),
						Description:     c.String("description"),
						Tags:            parseTags(c.String("tags")),
					}
					if audio := c.String("audio-file"); audio != "" {
						input.AudioFile = &audio
					}

					output, err := ops.LogSketch(s, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "visual",
				Usage: "Log the day's visual moodboard",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "Date (YYYY-MM-DD, defaults to today)"},
					&cli.StringFlag{Name: "images", Required: true, Usage: "Comma-separated image paths or URLs"},
					&cli.StringFlag{Name: "theme", Required: true, Usage: "Moodboard theme"},
					&cli.StringFlag{Name: "palette", Usage: "Comma-separated color palette"},
				},
				Action: func(c *cli.Context) error {
					input := ops.LogMoodboardInput{
						Date:         c.String("date"),
						Images:       parseTags(c.String("images")),
						Theme:        c.String("theme"),
						ColorPalette: parseTags(c.String("palette")),
					}

					output, err := ops.LogMoodboard(s, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "lore",
				Usage: "Log the day's lore fragment",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "Date (YYYY-MM-DD, defaults to today)"},
					&cli.StringFlag{Name: "character", Required: true, Usage: "Character the fragment belongs to"},
					&cli.StringFlag{Name: "fragment", Required: true, Usage: "The lore text"},
					&cli.StringFlag{Name: "arc", Required: true, Usage: "Narrative arc"},
					&cli.StringFlag{Name: "elements", Usage: "Comma-separated world-building elements"},
				},
				Action: func(c *cli.Context) error {
					input := ops.LogLoreInput{
						Date:                  c.String("date"),
						Character:             c.String("character"),
						Fragment:              c.String("fragment"),
						NarrativeArc:          c.String("arc"),
						WorldBuildingElements: parseTags(c.String("elements")),
					}

					output, err := ops.LogLore(s, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// processCmd creates the process command.
func processCmd(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "process",
		Usage: "Log a sample flip process entry",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Required: true, Usage: "Sample source"},
			&cli.StringFlag{Name: "approach", Required: true, Usage: "Remix approach"},
			&cli.StringFlag{Name: "format", Required: true, Usage: "Render format"},
			&cli.StringFlag{Name: "emotion", Required: true, Usage: "Emotion tag"},
			&cli.IntFlag{Name: "tempo", Usage: "Tempo in BPM"},
			&cli.StringFlag{Name: "arc", Usage: "Lore arc this flip connects to"},
		},
		Action: func(c *cli.Context) error {
			input := ops.LogProcessInput{
				SampleSource:      c.String("source"),
				RemixApproach:     c.String("approach"),
				RenderFormat:      c.String("format"),
				EmotionTag:        c.String("emotion"),
				LoreArcConnection: c.String("arc"),
			}
			if c.IsSet("tempo") {
				tempo := c.Int("tempo")
				input.Tempo = &tempo
			}

			output, err := ops.LogProcess(s, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// outputCmd groups the three output kinds.
func outputCmd(s *store.Store) *cli.Command {
	sub := func(kind, usage string) *cli.Command {
		return &cli.Command{
			Name:  kind,
			Usage: usage,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true, Usage: "Release title"},
				&cli.StringFlag{Name: "category", Usage: "Category label"},
				&cli.StringFlag{Name: "file", Usage: "Path to the release artifact"},
				&cli.StringFlag{Name: "description", Aliases: []string{"m"}, Usage: "Description"},
				&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
				&cli.StringFlag{Name: "release-date", Usage: "Release date (YYYY-MM-DD or RFC3339, defaults to now)"},
			},
			Action: func(c *cli.Context) error {
				input := ops.LogOutputInput{
					Title:       c.String("title"),
					Kind:        kind,
					Category:    c.String("category"),
					Description: c.String("description"),
					Tags:        parseTags(c.String("tags")),
				}
				if file := c.String("file"); file != "" {
					input.FilePath = &file
				}
				if raw := c.String("release-date"); raw != "" {
					t, err := parseReleaseDate(raw)
					if err != nil {
						return outputError(errors.NewInvalidRequest(err.Error()))
					}
					input.ReleaseDate = &t
				}

				output, err := ops.LogOutput(s, input)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			},
		}
	}

	return &cli.Command{
		Name:  "output",
		Usage: "Log a weekly or monthly output release",
		Subcommands: []*cli.Command{
			sub("micro", "Log a micro release (loop pack, patch, short video)"),
			sub("major", "Log a major release (EP, sample pack, plugin suite)"),
			sub("vst3", "Log a VST3 plugin build"),
		},
	}
}

// pluginCmd creates the plugin command.
func pluginCmd(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "plugin",
		Usage: "Inspect and edit plugin build entries",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List plugin builds, newest first",
				Action: func(c *cli.Context) error {
					plugins, err := ops.ListPlugins(s)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"plugins": plugins})
				},
			},
			{
				Name:      "edit",
				Usage:     "Edit an existing plugin build entry",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
					&cli.StringFlag{Name: "file", Usage: "New artifact path"},
					&cli.StringFlag{Name: "description", Aliases: []string{"m"}, Usage: "New description"},
					&cli.StringFlag{Name: "tags", Usage: "New comma-separated tags"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return outputError(errors.NewInvalidRequest("plugin id is required"))
					}
					input := ops.UpdatePluginInput{ID: c.Args().First()}

					if title := c.String("title"); title != "" {
						input.Title = &title
					}
					if file := c.String("file"); file != "" {
						input.FilePath = &file
					}
					if desc := c.String("description"); desc != "" {
						input.Description = &desc
					}
					if c.IsSet("tags") {
						tags := parseTags(c.String("tags"))
						input.Tags = &tags
					}

					output, err := ops.UpdatePlugin(s, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// statusCmd groups the progress and reporting views.
func statusCmd(s *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Progress against the daily, weekly, and monthly goals",
		Subcommands: []*cli.Command{
			{
				Name:  "daily",
				Usage: "Check the day's input loop",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "Date (YYYY-MM-DD, defaults to today)"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.DailyStatus(s, c.String("date"))
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "weekly",
				Usage: "Progress against the weekly release goals",
				Action: func(c *cli.Context) error {
					output, err := ops.WeeklyProgress(s, cfg, time.Now())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "monthly",
				Usage: "Progress against the monthly release goals",
				Action: func(c *cli.Context) error {
					output, err := ops.MonthlyProgress(s, cfg, time.Now())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "stats",
				Usage: "Overall output counts, completion rate, and streak",
				Action: func(c *cli.Context) error {
					output, err := ops.Stats(s, time.Now())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "report",
				Usage: "Full progress report as plain text",
				Action: func(c *cli.Context) error {
					report, err := ops.Report(s, cfg, time.Now())
					if err != nil {
						return outputError(err)
					}
					fmt.Println(report)
					return nil
				},
			},
		},
	}
}

// taskCmd creates the task command.
func taskCmd(s *store.Store) *cli.Command {
	typeFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "type", Value: "weekly", Usage: "Task list: weekly|monthly"}
	}

	return &cli.Command{
		Name:  "task",
		Usage: "Manage the weekly and monthly task lists",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List tasks",
				Flags: []cli.Flag{typeFlag()},
				Action: func(c *cli.Context) error {
					tasks, err := ops.GetTasks(s, c.String("type"))
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"tasks": tasks})
				},
			},
			{
				Name:      "add",
				Usage:     "Add a task",
				ArgsUsage: "<text>",
				Flags: []cli.Flag{
					typeFlag(),
					&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Value: "medium", Usage: "Priority: low|medium|high"},
				},
				Action: func(c *cli.Context) error {
					task, err := ops.AddTask(s, ops.AddTaskInput{
						Type:     c.String("type"),
						Text:     strings.Join(c.Args().Slice(), " "),
						Priority: c.String("priority"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(task)
				},
			},
			{
				Name:      "update",
				Usage:     "Edit a task or toggle its completion",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					typeFlag(),
					&cli.BoolFlag{Name: "done", Usage: "Mark the task complete"},
					&cli.BoolFlag{Name: "undone", Usage: "Mark the task incomplete"},
					&cli.StringFlag{Name: "text", Usage: "New task text"},
					&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "New priority"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return outputError(errors.NewInvalidRequest("task id is required"))
					}
					input := ops.UpdateTaskInput{
						Type: c.String("type"),
						ID:   c.Args().First(),
					}

					if c.Bool("done") {
						done := true
						input.Completed = &done
					} else if c.Bool("undone") {
						done := false
						input.Completed = &done
					}
					if text := c.String("text"); text != "" {
						input.Text = &text
					}
					if c.IsSet("priority") {
						priority := c.String("priority")
						input.Priority = &priority
					}

					task, err := ops.UpdateTask(s, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(task)
				},
			},
			{
				Name:      "rm",
				Usage:     "Delete a task",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{typeFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return outputError(errors.NewInvalidRequest("task id is required"))
					}
					if err := ops.DeleteTask(s, c.String("type"), c.Args().First()); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"success": true})
				},
			},
		},
	}
}

// paymentCmd creates the payment command.
func paymentCmd(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "payment",
		Usage: "Track recurring tool and service payments",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List payments",
				Action: func(c *cli.Context) error {
					payments, err := ops.ListPayments(s)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"payments": payments})
				},
			},
			{
				Name:  "add",
				Usage: "Add a payment",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Payment name"},
					&cli.Float64Flag{Name: "amount", Aliases: []string{"a"}, Required: true, Usage: "Amount"},
					&cli.StringFlag{Name: "category", Usage: "Category label"},
					&cli.StringFlag{Name: "notes", Usage: "Free-form notes"},
				},
				Action: func(c *cli.Context) error {
					payment, err := ops.AddPayment(s, ops.AddPaymentInput{
						Name:     c.String("name"),
						Amount:   c.Float64("amount"),
						Category: c.String("category"),
						Notes:    c.String("notes"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(payment)
				},
			},
			{
				Name:      "update",
				Usage:     "Replace a payment's fields",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Payment name"},
					&cli.Float64Flag{Name: "amount", Aliases: []string{"a"}, Required: true, Usage: "Amount"},
					&cli.StringFlag{Name: "category", Usage: "Category label"},
					&cli.StringFlag{Name: "notes", Usage: "Free-form notes"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return outputError(errors.NewInvalidRequest("payment id is required"))
					}
					payment, err := ops.UpdatePayment(s, ops.UpdatePaymentInput{
						ID:       c.Args().First(),
						Name:     c.String("name"),
						Amount:   c.Float64("amount"),
						Category: c.String("category"),
						Notes:    c.String("notes"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(payment)
				},
			},
			{
				Name:      "rm",
				Usage:     "Delete a payment",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return outputError(errors.NewInvalidRequest("payment id is required"))
					}
					if err := ops.DeletePayment(s, c.Args().First()); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"success": true})
				},
			},
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(s *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the dashboard and REST API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (overrides config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			runCfg := *cfg
			if bind := c.String("bind"); bind != "" {
				runCfg.Bind = bind
			}
			if c.IsSet("port") {
				runCfg.Port = c.Int("port")
			}

			log, err := logger.New(runCfg.LogMode)
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to build logger: %v", err), 1)
			}
			defer log.Sync()

			srv := web.NewServer(s, &runCfg, log)
			if err := web.Run(srv, log); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if loopErr, ok := err.(*errors.LoopError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", loopErr.Code, loopErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseReleaseDate accepts either a bare date or a full RFC 3339 timestamp.
func parseReleaseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid release date: %s (want YYYY-MM-DD or RFC 3339)", s)
}
