package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/yungtweek/openclaw-agent/internal/mock"
)

var (
	ErrNoTasks  = errors.New("no tasks loaded")
	ErrNoEvents = errors.New("no events loaded")
)

// TaskEntry is one prerecorded task the agent can run on its own.
type TaskEntry struct {
	Task         string `json:"task"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

// EventSequence is an ordered list of opaque payloads replayed by the stream
// simulator. Order within a sequence is replay order.
type EventSequence []string

type tasksFile struct {
	Tasks []TaskEntry `json:"tasks"`
}

type eventsFile struct {
	Events []EventSequence `json:"events"`
}

// Store holds both dataset collections. Loaded once at startup and read-only
// afterwards, so concurrent request handlers share it without locking.
type Store struct {
	tasks     []TaskEntry
	sequences []EventSequence
}

// Load reads the task and event definitions. A missing or malformed file is
// fatal for the caller; empty collections load fine and are surfaced per
// request by the Random* accessors.
func Load(tasksPath, eventsPath string) (*Store, error) {
	raw, err := os.ReadFile(tasksPath)
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}
	var tf tasksFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return nil, fmt.Errorf("parse tasks file %s: %w", tasksPath, err)
	}
	for i, entry := range tf.Tasks {
		if entry.Task == "" {
			return nil, fmt.Errorf("tasks file %s: entry %d has no task text", tasksPath, i)
		}
	}

	raw, err = os.ReadFile(eventsPath)
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}
	var ef eventsFile
	if err := json.Unmarshal(raw, &ef); err != nil {
		return nil, fmt.Errorf("parse events file %s: %w", eventsPath, err)
	}
	for i, seq := range ef.Events {
		if len(seq) == 0 {
			return nil, fmt.Errorf("events file %s: sequence %d is empty", eventsPath, i)
		}
	}

	return &Store{tasks: tf.Tasks, sequences: ef.Events}, nil
}

func (s *Store) TaskCount() int { return len(s.tasks) }

func (s *Store) SequenceCount() int { return len(s.sequences) }

// RandomTask draws one entry uniformly. Returns ErrNoTasks when the
// collection is empty.
func (s *Store) RandomTask() (TaskEntry, error) {
	if len(s.tasks) == 0 {
		return TaskEntry{}, ErrNoTasks
	}
	return s.tasks[mock.RandIntn(len(s.tasks))], nil
}

// RandomSequence draws one sequence uniformly. The returned slice is a shared
// read-only view; callers must not mutate it.
func (s *Store) RandomSequence() (EventSequence, error) {
	if len(s.sequences) == 0 {
		return nil, ErrNoEvents
	}
	return s.sequences[mock.RandIntn(len(s.sequences))], nil
}
