package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/dsgnrg/looptrack/internal/config"
	"github.com/dsgnrg/looptrack/internal/ops"
	"github.com/dsgnrg/looptrack/internal/store"
)

// setupTestStore creates a temporary store for testing.
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Init(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("failed to init test store: %v", err)
	}
	return s
}

// runApp runs the CLI app with the given args and captures stdout.
func runApp(t *testing.T, s *store.Store, args ...string) (string, error) {
	t.Helper()

	app := newCLIApp(s, config.DefaultConfig())

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"looptrack"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

// TestParseTags tests the parseTags helper function.
func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single tag",
			input:    "ambient",
			expected: []string{"ambient"},
		},
		{
			name:     "multiple tags",
			input:    "ambient,granular,drone",
			expected: []string{"ambient", "granular", "drone"},
		},
		{
			name:     "tags with spaces",
			input:    " ambient , granular ",
			expected: []string{"ambient", "granular"},
		},
		{
			name:     "empty tags filtered",
			input:    "ambient,,drone,",
			expected: []string{"ambient", "drone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseTags(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("expected %d tags, got %d", len(tt.expected), len(result))
				return
			}
			for i, tag := range result {
				if tag != tt.expected[i] {
					t.Errorf("expected tag[%d]=%q, got %q", i, tt.expected[i], tag)
				}
			}
		})
	}
}

// TestParseReleaseDate tests the parseReleaseDate helper function.
func TestParseReleaseDate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "bare date",
			input:    "2024-01-02",
			expected: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "full timestamp",
			input:    "2024-01-02T12:30:00Z",
			expected: time.Date(2024, 1, 2, 12, 30, 0, 0, time.UTC),
		},
		{
			name:        "slash format",
			input:       "01/02/2024",
			expectError: true,
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseReleaseDate(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if !result.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

// TestCLIInputSketch tests the input sketch command.
func TestCLIInputSketch(t *testing.T) {
	s := setupTestStore(t)

	out, err := runApp(t, s, "input", "sketch",
		"--date=2024-01-02", "--duration=30",
		"--description=granular pad study", "--tags=ambient,granular")
	if err != nil {
		t.Fatalf("input sketch command failed: %v", err)
	}

	var output ops.LogSketchOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Date != "2024-01-02" {
		t.Errorf("expected date=2024-01-02, got %s", output.Date)
	}

	// The day's status should now show the sketch done.
	status, err := ops.DailyStatus(s, "2024-01-02")
	if err != nil {
		t.Fatalf("daily status failed: %v", err)
	}
	if !status.SketchDone {
		t.Error("expected sketch to be marked done")
	}
}

// TestCLIOutputAndPluginEdit tests logging a plugin build and editing it.
func TestCLIOutputAndPluginEdit(t *testing.T) {
	s := setupTestStore(t)

	out, err := runApp(t, s, "output", "vst3",
		"--title=spectral gate", "--release-date=2024-01-02")
	if err != nil {
		t.Fatalf("output vst3 command failed: %v", err)
	}

	var logged ops.LogOutputOutput
	if err := json.Unmarshal([]byte(out), &logged); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if logged.OutputID != "vst3_1" {
		t.Errorf("expected output_id=vst3_1, got %s", logged.OutputID)
	}

	if _, err := runApp(t, s, "plugin", "edit", "vst3_1",
		"--description=sidechain input added"); err != nil {
		t.Fatalf("plugin edit command failed: %v", err)
	}

	out, err = runApp(t, s, "plugin", "list")
	if err != nil {
		t.Fatalf("plugin list command failed: %v", err)
	}

	var listed struct {
		Plugins []ops.PluginItem `json:"plugins"`
	}
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if len(listed.Plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(listed.Plugins))
	}
	if listed.Plugins[0].Description != "sidechain input added" {
		t.Errorf("expected the edited description, got %q", listed.Plugins[0].Description)
	}
}

// TestCLIPluginEditUnknownID tests the error path for a missing plugin.
func TestCLIPluginEditUnknownID(t *testing.T) {
	s := setupTestStore(t)

	_, err := runApp(t, s, "plugin", "edit", "vst3_9", "--title=ghost")
	if err == nil {
		t.Fatal("expected error for unknown plugin id, got nil")
	}
}

// TestCLIStatusDaily tests the status daily command.
func TestCLIStatusDaily(t *testing.T) {
	s := setupTestStore(t)

	audio := "sketch.wav"
	if _, err := ops.LogSketch(s, ops.LogSketchInput{
		Date: "2024-01-02", DurationMinutes: 20,
		Description: "arp study", AudioFile: &audio,
	}); err != nil {
		t.Fatalf("failed to log sketch: %v", err)
	}

	out, err := runApp(t, s, "status", "daily", "--date=2024-01-02")
	if err != nil {
		t.Fatalf("status daily command failed: %v", err)
	}

	var status ops.DailyStatusOutput
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if !status.SketchDone {
		t.Error("expected sonic_sketch_complete=true")
	}
	if status.AllDone {
		t.Error("expected daily_loop_complete=false with only the sketch logged")
	}
}

// TestCLITaskLifecycle tests add, complete, and delete for a task.
func TestCLITaskLifecycle(t *testing.T) {
	s := setupTestStore(t)

	out, err := runApp(t, s, "task", "add", "ship", "loop", "pack")
	if err != nil {
		t.Fatalf("task add command failed: %v", err)
	}

	var task struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(out), &task); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if task.ID != "1" {
		t.Errorf("expected id=1, got %s", task.ID)
	}
	if task.Text != "ship loop pack" {
		t.Errorf("expected joined args as text, got %q", task.Text)
	}

	if _, err := runApp(t, s, "task", "update", "1", "--done"); err != nil {
		t.Fatalf("task update command failed: %v", err)
	}

	tasks, err := ops.GetTasks(s, "weekly")
	if err != nil {
		t.Fatalf("failed to read tasks: %v", err)
	}
	if len(tasks) != 1 || !tasks[0].Completed {
		t.Fatalf("expected one completed task, got %+v", tasks)
	}

	if _, err := runApp(t, s, "task", "rm", "1"); err != nil {
		t.Fatalf("task rm command failed: %v", err)
	}

	tasks, err = ops.GetTasks(s, "weekly")
	if err != nil {
		t.Fatalf("failed to read tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty task list, got %d tasks", len(tasks))
	}
}

// TestCLIPaymentAddAndRemove tests the payment command.
func TestCLIPaymentAddAndRemove(t *testing.T) {
	s := setupTestStore(t)

	out, err := runApp(t, s, "payment", "add",
		"--name=Splice", "--amount=12.99", "--category=samples")
	if err != nil {
		t.Fatalf("payment add command failed: %v", err)
	}

	var payment struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal([]byte(out), &payment); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if payment.ID != "1" {
		t.Errorf("expected id=1, got %s", payment.ID)
	}
	if payment.Amount != 12.99 {
		t.Errorf("expected amount=12.99, got %v", payment.Amount)
	}

	if _, err := runApp(t, s, "payment", "rm", "1"); err != nil {
		t.Fatalf("payment rm command failed: %v", err)
	}

	payments, err := ops.ListPayments(s)
	if err != nil {
		t.Fatalf("failed to read payments: %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("expected empty payment list, got %d payments", len(payments))
	}
}

// TestCLIUnknownTaskType tests validation of the task list type.
func TestCLIUnknownTaskType(t *testing.T) {
	s := setupTestStore(t)

	_, err := runApp(t, s, "task", "list", "--type=yearly")
	if err == nil {
		t.Fatal("expected error for unknown task type, got nil")
	}
}
