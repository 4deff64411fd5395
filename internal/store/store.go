// Package store persists keyed JSON-document collections, one file per
// collection. Every operation re-reads the whole backing file and every
// write rewrites it; there is no caching and no locking. Two concurrent
// writers to the same collection race last-write-wins, which is accepted
// for a single-operator tool.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/logger"
	"github.com/dsgnrg/looptrack/internal/record"
)

// Collection file names (without the .json extension).
const (
	CollInputs    = "inputs"
	CollProcesses = "processes"
	CollOutputs   = "outputs"
	CollCalendar  = "calendar"
	CollPayments  = "payments"
)

// Store is a directory of independent JSON-document collections.
type Store struct {
	dataDir string
	log     *logger.Logger // optional; decode-failure recoveries are logged here
}

// Init creates the data directory (and its uploads subdirectory) at
// baseDir and returns a Store rooted there. The baseDir parameter allows
// tests to use t.TempDir().
func Init(baseDir string, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	uploadsDir := filepath.Join(baseDir, "uploads")
	if err := os.MkdirAll(uploadsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &Store{dataDir: baseDir, log: log}, nil
}

// DataDir returns the directory holding the collection files.
func (s *Store) DataDir() string {
	return s.dataDir
}

// UploadsDir returns the directory media files are streamed into.
func (s *Store) UploadsDir() string {
	return filepath.Join(s.dataDir, "uploads")
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dataDir, collection+".json")
}

// Load decodes an entire collection document. A missing or corrupt file
// yields the zero value: decode failures are recovered silently per the
// store contract, never surfaced to callers.
func Load[T any](s *Store, collection string) (T, error) {
	var doc T
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, errors.NewInternal(err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		if s.log != nil {
			s.log.Warn("recovered corrupt collection as empty",
				"error", errors.NewDecodeFailure(collection, err).Error())
		}
		var zero T
		return zero, nil
	}
	return doc, nil
}

// Save rewrites an entire collection document. The write goes to a temp
// file first so a crash mid-write never leaves a truncated collection.
func Save[T any](s *Store, collection string, doc T) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.NewInternal(err)
	}

	target := s.path(collection)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.NewInternal(err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// Collection provides keyed access to a map-shaped collection document.
type Collection[V any] struct {
	s    *Store
	name string
}

// All returns every document in the collection, keyed by id. The map is
// freshly decoded on each call, so callers get a structural copy.
func (c Collection[V]) All() (map[string]V, error) {
	docs, err := Load[map[string]V](c.s, c.name)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = make(map[string]V)
	}
	return docs, nil
}

// Get returns the document under key, reporting absence via ok.
func (c Collection[V]) Get(key string) (V, bool, error) {
	docs, err := c.All()
	if err != nil {
		var zero V
		return zero, false, err
	}
	v, ok := docs[key]
	return v, ok, nil
}

// Put stores the document under key, creating or replacing it.
func (c Collection[V]) Put(key string, v V) error {
	docs, err := c.All()
	if err != nil {
		return err
	}
	docs[key] = v
	return Save(c.s, c.name, docs)
}

// Delete removes the document under key. Fails with NotFound when the
// key is absent, leaving the collection untouched.
func (c Collection[V]) Delete(key string) error {
	docs, err := c.All()
	if err != nil {
		return err
	}
	if _, ok := docs[key]; !ok {
		return errors.NewNotFound(c.name, key)
	}
	delete(docs, key)
	return Save(c.s, c.name, docs)
}

// Typed collection accessors.

// Inputs is the daily-input collection, keyed by "2006-01-02" date.
func Inputs(s *Store) Collection[record.DailyInput] {
	return Collection[record.DailyInput]{s: s, name: CollInputs}
}

// Processes is the creative-process collection, keyed by generated id.
func Processes(s *Store) Collection[record.CreativeProcess] {
	return Collection[record.CreativeProcess]{s: s, name: CollProcesses}
}

// Outputs is the creative-output collection, keyed by "<kind>_<n>" id.
func Outputs(s *Store) Collection[record.CreativeOutput] {
	return Collection[record.CreativeOutput]{s: s, name: CollOutputs}
}

// LoadCalendar reads the calendar index document.
func LoadCalendar(s *Store) (record.Calendar, error) {
	cal, err := Load[record.Calendar](s, CollCalendar)
	if err != nil {
		return nil, err
	}
	if cal == nil {
		cal = make(record.Calendar)
	}
	return cal, nil
}

// SaveCalendar rewrites the calendar index document.
func SaveCalendar(s *Store, cal record.Calendar) error {
	return Save(s, CollCalendar, cal)
}

// LoadTasks reads the ordered task list for a task type. Each type
// persists as its own "<type>_tasks" collection.
func LoadTasks(s *Store, taskType string) (record.TaskList, error) {
	return Load[record.TaskList](s, taskType+"_tasks")
}

// SaveTasks rewrites the task list for a task type.
func SaveTasks(s *Store, taskType string, list record.TaskList) error {
	return Save(s, taskType+"_tasks", list)
}

// LoadPayments reads the ordered payments document.
func LoadPayments(s *Store) (record.PaymentList, error) {
	return Load[record.PaymentList](s, CollPayments)
}

// SavePayments rewrites the payments document.
func SavePayments(s *Store, list record.PaymentList) error {
	return Save(s, CollPayments, list)
}
