package ops

import (
	"strconv"
	"time"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
	"github.com/dsgnrg/looptrack/internal/store"
)

// Task types. The type names a backing file, so the set is closed rather
// than accepting arbitrary strings.
const (
	TaskTypeWeekly  = "weekly"
	TaskTypeMonthly = "monthly"
)

func validateTaskType(taskType string) error {
	if taskType != TaskTypeWeekly && taskType != TaskTypeMonthly {
		return errors.NewInvalidRequest("task type must be one of: weekly, monthly")
	}
	return nil
}

// GetTasks returns all tasks of the given type in insertion order.
func GetTasks(s *store.Store, taskType string) ([]record.Task, error) {
	if err := validateTaskType(taskType); err != nil {
		return nil, err
	}
	list, err := store.LoadTasks(s, taskType)
	if err != nil {
		return nil, err
	}
	if list.Tasks == nil {
		return []record.Task{}, nil
	}
	return list.Tasks, nil
}

// AddTaskInput contains parameters for the AddTask operation.
type AddTaskInput struct {
	Type     string
	Text     string
	Priority string // default: medium
}

// AddTask appends a new task. The id is the smallest previously unused
// integer string, probing upward from count+1 until collision-free.
func AddTask(s *store.Store, input AddTaskInput) (*record.Task, error) {
	if err := validateTaskType(input.Type); err != nil {
		return nil, err
	}
	if input.Text == "" {
		return nil, errors.NewInvalidRequest("text is required")
	}
	if input.Priority == "" {
		input.Priority = "medium"
	}

	list, err := store.LoadTasks(s, input.Type)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(list.Tasks))
	for _, t := range list.Tasks {
		used[t.ID] = true
	}
	n := len(list.Tasks) + 1
	for used[strconv.Itoa(n)] {
		n++
	}

	task := record.Task{
		ID:        strconv.Itoa(n),
		Text:      input.Text,
		Priority:  input.Priority,
		CreatedAt: time.Now(),
	}
	list.Tasks = append(list.Tasks, task)

	if err := store.SaveTasks(s, input.Type, list); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskInput contains parameters for the UpdateTask operation.
// Nil fields are left unchanged.
type UpdateTaskInput struct {
	Type      string
	ID        string
	Completed *bool
	Text      *string
	Priority  *string
}

// UpdateTask edits a task; toggling completion stamps or clears the
// completion time.
func UpdateTask(s *store.Store, input UpdateTaskInput) (*record.Task, error) {
	if err := validateTaskType(input.Type); err != nil {
		return nil, err
	}
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	list, err := store.LoadTasks(s, input.Type)
	if err != nil {
		return nil, err
	}

	for i := range list.Tasks {
		if list.Tasks[i].ID != input.ID {
			continue
		}
		if input.Completed != nil {
			list.Tasks[i].Completed = *input.Completed
			if *input.Completed {
				now := time.Now()
				list.Tasks[i].CompletedAt = &now
			} else {
				list.Tasks[i].CompletedAt = nil
			}
		}
		if input.Text != nil {
			list.Tasks[i].Text = *input.Text
		}
		if input.Priority != nil {
			list.Tasks[i].Priority = *input.Priority
		}
		if err := store.SaveTasks(s, input.Type, list); err != nil {
			return nil, err
		}
		task := list.Tasks[i]
		return &task, nil
	}

	return nil, errors.NewNotFound("task", input.ID)
}

// DeleteTask removes a task. Fails with NotFound when the id is absent,
// leaving the list unchanged.
func DeleteTask(s *store.Store, taskType, id string) error {
	if err := validateTaskType(taskType); err != nil {
		return err
	}

	list, err := store.LoadTasks(s, taskType)
	if err != nil {
		return err
	}

	kept := make([]record.Task, 0, len(list.Tasks))
	for _, t := range list.Tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(list.Tasks) {
		return errors.NewNotFound("task", id)
	}

	list.Tasks = kept
	return store.SaveTasks(s, taskType, list)
}
