package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// StateFileName is written into a worktree's private git directory, so it is
// never part of the working tree and disappears with `git worktree remove`.
const StateFileName = "offshoot.yaml"

// WorktreeState records how offshoot created a worktree.
type WorktreeState struct {
	Branch       string    `yaml:"branch"`
	MainCheckout string    `yaml:"main_checkout"`
	Shared       []string  `yaml:"shared,omitempty"`
	Cloned       []string  `yaml:"cloned,omitempty"`
	CreatedAt    time.Time `yaml:"created_at"`
}

// ReadWorktreeState reads the state file from gitDir. A missing file yields
// nil state and no error.
func ReadWorktreeState(gitDir string) (*WorktreeState, error) {
	content, err := os.ReadFile(filepath.Join(gitDir, StateFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading worktree state: %w", err)
	}

	var state WorktreeState
	if err := yaml.Unmarshal(content, &state); err != nil {
		return nil, fmt.Errorf("parsing worktree state: %w", err)
	}
	return &state, nil
}

// WriteWorktreeState writes state to gitDir, merging over any existing
// record. Keys unknown to this version are preserved. A nil file list leaves
// the recorded one alone while an empty one removes it.
func WriteWorktreeState(gitDir string, state WorktreeState) error {
	path := filepath.Join(gitDir, StateFileName)

	existing := make(map[string]any)
	if content, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(content, &existing); err != nil {
			return fmt.Errorf("parsing existing worktree state: %w", err)
		}
		if existing == nil {
			existing = make(map[string]any)
		}
	}

	if state.Branch != "" {
		existing["branch"] = state.Branch
	}
	if state.MainCheckout != "" {
		existing["main_checkout"] = state.MainCheckout
	}
	setList(existing, "shared", state.Shared)
	setList(existing, "cloned", state.Cloned)
	if !state.CreatedAt.IsZero() {
		existing["created_at"] = state.CreatedAt.UTC()
	}

	content, err := yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("marshaling worktree state: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing worktree state: %w", err)
	}
	return nil
}

func setList(record map[string]any, key string, list []string) {
	switch {
	case list == nil:
	case len(list) == 0:
		delete(record, key)
	default:
		record[key] = list
	}
}
