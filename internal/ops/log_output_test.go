package ops

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dsgnrg/looptrack/internal/errors"
)

func TestLogOutput_IDSequencePerKind(t *testing.T) {
	s := testStore(t)

	for i := 1; i <= 3; i++ {
		out, err := LogOutput(s, LogOutputInput{Title: fmt.Sprintf("beat %d", i), Kind: "micro", Category: "beat"})
		if err != nil {
			t.Fatalf("LogOutput failed: %v", err)
		}
		want := fmt.Sprintf("micro_%d", i)
		if out.OutputID != want {
			t.Errorf("OutputID = %q, want %q", out.OutputID, want)
		}
	}

	// Counters are scoped per kind, so the first major is major_1.
	out, err := LogOutput(s, LogOutputInput{Title: "debut EP", Kind: "major", Category: "track"})
	if err != nil {
		t.Fatalf("LogOutput failed: %v", err)
	}
	if out.OutputID != "major_1" {
		t.Errorf("OutputID = %q, want %q", out.OutputID, "major_1")
	}
}

func TestLogOutput_RejectsUnknownKind(t *testing.T) {
	s := testStore(t)

	_, err := LogOutput(s, LogOutputInput{Title: "x", Kind: "mega"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestLogOutput_RequiresTitle(t *testing.T) {
	s := testStore(t)

	_, err := LogOutput(s, LogOutputInput{Kind: "micro"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestLogOutput_PluginDefaultsCategory(t *testing.T) {
	s := testStore(t)

	out, err := LogOutput(s, LogOutputInput{Title: "granular delay", Kind: "vst3"})
	if err != nil {
		t.Fatalf("LogOutput failed: %v", err)
	}
	if !strings.HasPrefix(out.OutputID, "vst3_") {
		t.Errorf("OutputID = %q, want vst3_ prefix", out.OutputID)
	}

	plugins, err := ListPlugins(s)
	if err != nil {
		t.Fatalf("ListPlugins failed: %v", err)
	}
	if len(plugins) != 1 {
		t.Fatalf("len(plugins) = %d, want 1", len(plugins))
	}
}
