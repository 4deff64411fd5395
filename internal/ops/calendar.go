package ops

import (
	"fmt"
	"time"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// MonthActivities returns the calendar index for one month: day key →
// activity type → activities. An unindexed month is an empty map.
func MonthActivities(s *store.Store, year, month int) (map[string]map[string][]record.Activity, error) {
	if month < 1 || month > 12 {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("month must be 1-12, got %d", month))
	}

	cal, err := store.LoadCalendar(s)
	if err != nil {
		return nil, err
	}

	monthKey := fmt.Sprintf("%04d-%02d", year, month)
	days := cal[monthKey]
	if days == nil {
		days = make(map[string]map[string][]record.Activity)
	}
	return days, nil
}

// DayActivities returns the calendar index for one day: activity type →
// activities. An unindexed day is an empty map.
func DayActivities(s *store.Store, date string) (map[string][]record.Activity, error) {
	t, err := time.Parse(record.DateFormat, date)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("date must be YYYY-MM-DD, got %q", date))
	}

	cal, lerr := store.LoadCalendar(s)
	if lerr != nil {
		return nil, lerr
	}

	monthKey := t.Format("2006-01")
	dayKey := fmt.Sprintf("%02d", t.Day())
	acts := cal[monthKey][dayKey]
	if acts == nil {
		acts = make(map[string][]record.Activity)
	}
	return acts, nil
}
