package ops

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// LogProcessInput contains parameters for the LogProcess operation.
type LogProcessInput struct {
	SampleSource      string
	RemixApproach     string
	RenderFormat      string
	EmotionTag        string
	Tempo             *int
	LoreArcConnection string
}

// LogProcessOutput contains the result of the LogProcess operation.
type LogProcessOutput struct {
	ProcessID string    `json:"process_id"`
	Timestamp time.Time `json:"timestamp"`
}

// LogProcess records a sample → remix → render session. The generated id
// is "proc_<n>_<ULID>": n orders by count, and the ULID embeds the
// creation timestamp so ids stay unique even when two writers race on
// the count.
func LogProcess(s *store.Store, input LogProcessInput) (*LogProcessOutput, error) {
	if input.SampleSource == "" {
		return nil, errors.NewInvalidRequest("sample_source is required")
	}
	if input.RemixApproach == "" {
		return nil, errors.NewInvalidRequest("remix_approach is required")
	}
	if input.RenderFormat == "" {
		return nil, errors.NewInvalidRequest("render_format is required")
	}
	if input.EmotionTag == "" {
		return nil, errors.NewInvalidRequest("emotion_tag is required")
	}

	processes := store.Processes(s)
	existing, err := processes.All()
	if err != nil {
		return nil, err
	}

	uid, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	id := fmt.Sprintf("proc_%d_%s", len(existing)+1, uid)

	proc := record.CreativeProcess{
		SampleSource:      input.SampleSource,
		RemixApproach:     input.RemixApproach,
		RenderFormat:      input.RenderFormat,
		EmotionTag:        input.EmotionTag,
		Tempo:             input.Tempo,
		LoreArcConnection: input.LoreArcConnection,
		Timestamp:         time.Now(),
	}

	if err := processes.Put(id, proc); err != nil {
		return nil, err
	}

	return &LogProcessOutput{ProcessID: id, Timestamp: proc.Timestamp}, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
