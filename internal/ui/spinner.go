package ui

import (
	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs action while showing title next to a spinner. The
// spinner is skipped when disabled or when not attached to a terminal, and
// action runs directly.
func RunWithSpinner(enabled bool, title string, action func() error) error {
	if !enabled || !IsInteractive() {
		return action()
	}

	var actionErr error
	err := spinner.New().
		Title(title).
		Action(func() {
			actionErr = action()
		}).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}
