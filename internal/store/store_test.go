package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Init(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func TestInit_CreatesDirectories(t *testing.T) {
	base := filepath.Join(t.TempDir(), "data")
	s, err := Init(base, nil)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	info, err := os.Stat(s.DataDir())
	if err != nil {
		t.Fatalf("data dir missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("data dir is not a directory")
	}
	if _, err := os.Stat(s.UploadsDir()); err != nil {
		t.Fatalf("uploads dir missing: %v", err)
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := testStore(t)

	docs, err := Inputs(s).All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("missing collection = %v, want empty", docs)
	}
}

func TestLoad_CorruptFileRecoversEmpty(t *testing.T) {
	s := testStore(t)

	path := filepath.Join(s.DataDir(), CollInputs+".json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	docs, err := Inputs(s).All()
	if err != nil {
		t.Fatalf("All on corrupt file failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("corrupt collection = %v, want empty", docs)
	}

	// Recovery is read-side only; the next write replaces the file.
	if err := Inputs(s).Put("2024-01-01", record.DailyInput{Date: "2024-01-01"}); err != nil {
		t.Fatalf("Put after recovery failed: %v", err)
	}
	docs, err = Inputs(s).All()
	if err != nil {
		t.Fatalf("All after rewrite failed: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("collection after rewrite = %v, want one record", docs)
	}
}

func TestCollection_PutGetDelete(t *testing.T) {
	s := testStore(t)
	inputs := Inputs(s)

	rec := record.DailyInput{Date: "2024-01-01"}
	if err := inputs.Put("2024-01-01", rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := inputs.Get("2024-01-01")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Get reported absent for a stored key")
	}
	if got.Date != "2024-01-01" {
		t.Errorf("Date = %q, want 2024-01-01", got.Date)
	}

	_, ok, err = inputs.Get("2024-01-02")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Get reported present for an absent key")
	}

	if err := inputs.Delete("2024-01-01"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := inputs.Delete("2024-01-01"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Delete of absent key = %v, want not found", err)
	}
}

func TestCollection_PutReplaces(t *testing.T) {
	s := testStore(t)
	inputs := Inputs(s)

	desc := "v1"
	if err := inputs.Put("2024-01-01", record.DailyInput{
		Date:        "2024-01-01",
		SonicSketch: &record.SonicSketch{DurationMinutes: 10, Description: desc},
	}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := inputs.Put("2024-01-01", record.DailyInput{
		Date:        "2024-01-01",
		SonicSketch: &record.SonicSketch{DurationMinutes: 20, Description: "v2"},
	}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, _, err := inputs.Get("2024-01-01")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.SonicSketch == nil || got.SonicSketch.Description != "v2" {
		t.Errorf("stored record = %+v, want replaced sketch", got)
	}
}

func TestCollections_AreIndependentFiles(t *testing.T) {
	s := testStore(t)

	if err := Inputs(s).Put("2024-01-01", record.DailyInput{Date: "2024-01-01"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := Outputs(s).Put("micro_1", record.CreativeOutput{Title: "beat", Kind: record.KindMicro}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	for _, name := range []string{CollInputs, CollOutputs} {
		if _, err := os.Stat(filepath.Join(s.DataDir(), name+".json")); err != nil {
			t.Errorf("collection file %s.json missing: %v", name, err)
		}
	}

	procs, err := Processes(s).All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(procs) != 0 {
		t.Errorf("untouched collection = %v, want empty", procs)
	}
}

func TestTasks_PerTypeFiles(t *testing.T) {
	s := testStore(t)

	weekly := record.TaskList{Tasks: []record.Task{{ID: "1", Text: "mix"}}}
	if err := SaveTasks(s, "weekly", weekly); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	monthly, err := LoadTasks(s, "monthly")
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if len(monthly.Tasks) != 0 {
		t.Errorf("monthly tasks = %v, want empty", monthly.Tasks)
	}

	if _, err := os.Stat(filepath.Join(s.DataDir(), "weekly_tasks.json")); err != nil {
		t.Errorf("weekly_tasks.json missing: %v", err)
	}
}

func TestCalendar_RoundTrip(t *testing.T) {
	s := testStore(t)

	cal, err := LoadCalendar(s)
	if err != nil {
		t.Fatalf("LoadCalendar failed: %v", err)
	}
	if len(cal) != 0 {
		t.Errorf("fresh calendar = %v, want empty", cal)
	}

	cal["2024-01"] = map[string]map[string][]record.Activity{
		"05": {"inputs": {{"type": "sonic_sketch"}}},
	}
	if err := SaveCalendar(s, cal); err != nil {
		t.Fatalf("SaveCalendar failed: %v", err)
	}

	got, err := LoadCalendar(s)
	if err != nil {
		t.Fatalf("LoadCalendar failed: %v", err)
	}
	if got["2024-01"]["05"]["inputs"][0]["type"] != "sonic_sketch" {
		t.Errorf("calendar round trip = %v", got)
	}
}

func TestSave_NoTempFileLeftBehind(t *testing.T) {
	s := testStore(t)

	if err := Save(s, CollPayments, record.PaymentList{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.DataDir(), CollPayments+".json.tmp")); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}
