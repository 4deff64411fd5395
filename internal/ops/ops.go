// Package ops implements the record-keeping and aggregation operations.
// Each operation is a bounded synchronous unit: it reads the affected
// collection in full, mutates it, and rewrites it before returning.
package ops

import (
	"fmt"
	"strings"
	"time"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// resolveDate validates an optional "2006-01-02" date, defaulting to the
// current day when empty.
func resolveDate(date string) (string, error) {
	if strings.TrimSpace(date) == "" {
		return time.Now().Format(record.DateFormat), nil
	}
	if _, err := time.Parse(record.DateFormat, date); err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("date must be YYYY-MM-DD, got %q", date))
	}
	return date, nil
}

// dayOf truncates a timestamp to its calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStartOf returns the most recent Monday on or before t.
func weekStartOf(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return dayOf(t).AddDate(0, 0, -daysSinceMonday)
}

// monthStartOf returns the first day of t's month.
func monthStartOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// cleanTags trims tags and drops empties.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// upsertInput applies mutate to the DailyInput for date, creating the
// day's record on first log.
func upsertInput(s *store.Store, date string, mutate func(*record.DailyInput)) error {
	inputs := store.Inputs(s)
	day, ok, err := inputs.Get(date)
	if err != nil {
		return err
	}
	if !ok {
		day = record.DailyInput{Date: date}
	}
	mutate(&day)
	return inputs.Put(date, day)
}

// appendActivity appends an entry to the calendar index for date. The
// index duplicates logged data and is append-only; it is never rewritten
// when a record is later edited.
func appendActivity(s *store.Store, date, activityType string, act record.Activity) error {
	t, err := time.Parse(record.DateFormat, date)
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("date must be YYYY-MM-DD, got %q", date))
	}
	monthKey := t.Format("2006-01")
	dayKey := fmt.Sprintf("%02d", t.Day())

	cal, err := store.LoadCalendar(s)
	if err != nil {
		return err
	}
	if cal[monthKey] == nil {
		cal[monthKey] = make(map[string]map[string][]record.Activity)
	}
	if cal[monthKey][dayKey] == nil {
		cal[monthKey][dayKey] = make(map[string][]record.Activity)
	}
	cal[monthKey][dayKey][activityType] = append(cal[monthKey][dayKey][activityType], act)
	return store.SaveCalendar(s, cal)
}
