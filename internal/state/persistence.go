package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Store handles persistence of planning runs. Mutating operations are
// guarded by a file lock so concurrent prpflow invocations cannot
// interleave writes.
type Store struct {
	stateDir    string
	lockTimeout time.Duration
}

// NewStore creates a new state store
func NewStore(stateDir string, lockTimeout time.Duration) (*Store, error) {
	runsDir := filepath.Join(stateDir, "runs")
	if err := os.MkdirAll(runsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &Store{stateDir: stateDir, lockTimeout: lockTimeout}, nil
}

// withLock runs fn while holding the store-wide file lock
func (s *Store) withLock(fn func() error) error {
	lock := flock.New(filepath.Join(s.stateDir, "state.lock"))

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire state lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("timeout waiting for state lock")
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

// CreateRun creates a new run and persists it
func (s *Store) CreateRun(featureText, projectRoot string) (*Run, error) {
	run := &Run{
		ID:          uuid.New().String()[:8],
		FeatureText: featureText,
		ProjectRoot: projectRoot,
		Status:      RunStatusPlanned,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.SaveRun(run); err != nil {
		return nil, err
	}

	if err := s.SetCurrentRun(run.ID); err != nil {
		return nil, err
	}

	return run, nil
}

// SaveRun persists a run to disk
func (s *Store) SaveRun(run *Run) error {
	return s.withLock(func() error {
		run.UpdatedAt = time.Now()

		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}

		if err := os.WriteFile(s.runPath(run.ID), data, 0644); err != nil {
			return fmt.Errorf("failed to write run file: %w", err)
		}

		return nil
	})
}

// LoadRun loads a run from disk
func (s *Store) LoadRun(id string) (*Run, error) {
	data, err := os.ReadFile(s.runPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("run %s not found", id)
		}
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}

	return &run, nil
}

// DeleteRun removes a run from disk
func (s *Store) DeleteRun(id string) error {
	return s.withLock(func() error {
		if err := os.Remove(s.runPath(id)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete run file: %w", err)
		}

		// Clear current if this was the current run
		currentID, _ := s.currentRunIDLocked()
		if currentID == id {
			_ = os.Remove(s.currentPath())
		}
		return nil
	})
}

// ListRuns returns all runs sorted by creation time (newest first)
func (s *Store) ListRuns() ([]*Run, error) {
	runsDir := filepath.Join(s.stateDir, "runs")
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var runs []*Run
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if entry.Name() == "current.json" {
			continue
		}

		id := entry.Name()[:len(entry.Name())-5]
		run, err := s.LoadRun(id)
		if err != nil {
			continue // Skip corrupted files
		}
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	return runs, nil
}

// SetCurrentRun sets the current active run
func (s *Store) SetCurrentRun(id string) error {
	return s.withLock(func() error {
		data, err := json.Marshal(map[string]string{"run_id": id})
		if err != nil {
			return err
		}
		return os.WriteFile(s.currentPath(), data, 0644)
	})
}

// GetCurrentRunID returns the ID of the current run
func (s *Store) GetCurrentRunID() (string, error) {
	return s.currentRunIDLocked()
}

func (s *Store) currentRunIDLocked() (string, error) {
	data, err := os.ReadFile(s.currentPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var current map[string]string
	if err := json.Unmarshal(data, &current); err != nil {
		return "", err
	}

	return current["run_id"], nil
}

// GetCurrentRun returns the current active run
func (s *Store) GetCurrentRun() (*Run, error) {
	id, err := s.GetCurrentRunID()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	return s.LoadRun(id)
}

// SetRunStatus updates a run's status, recording an error message
// for failed runs
func (s *Store) SetRunStatus(id string, status RunStatus, errMsg string) error {
	run, err := s.LoadRun(id)
	if err != nil {
		return err
	}
	run.Status = status
	run.Error = errMsg
	return s.SaveRun(run)
}

func (s *Store) currentPath() string {
	return filepath.Join(s.stateDir, "current.json")
}

func (s *Store) runPath(id string) string {
	return filepath.Join(s.stateDir, "runs", id+".json")
}
