package exec

import (
	"context"
	"fmt"
	"strings"
)

// MockCommander is a test double that records command calls and returns preset responses.
// Use this in tests to verify commands are executed correctly without actually running them.
type MockCommander struct {
	// Responses maps command keys to their preset responses.
	// The key is formatted as: "command arg1 arg2 ..."
	Responses map[string]CommandResponse

	// Calls records all commands that were executed.
	Calls []CommandCall
}

// CommandCall records details of a single command execution.
type CommandCall struct {
	Dir     string
	Command string
	Args    []string
}

// Key returns the "command arg1 arg2" form used to match responses.
func (c CommandCall) Key() string {
	return buildCommandKey(c.Command, c.Args)
}

// CommandResponse defines the response for a specific command.
type CommandResponse struct {
	Output []byte
	Err    error
}

// NewMockCommander creates a new MockCommander with empty responses and calls.
func NewMockCommander() *MockCommander {
	return &MockCommander{
		Responses: make(map[string]CommandResponse),
		Calls:     make([]CommandCall, 0),
	}
}

// Run records the command call and returns the preset response if one exists.
// If no response is found for the key, it returns nil, nil.
func (m *MockCommander) Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	call := CommandCall{
		Dir:     dir,
		Command: command,
		Args:    args,
	}
	m.Calls = append(m.Calls, call)

	if resp, ok := m.Responses[call.Key()]; ok {
		return resp.Output, resp.Err
	}

	// No preset response found - return success by default
	return nil, nil
}

// SetResponse configures a preset response for a specific command.
func (m *MockCommander) SetResponse(command string, args []string, output []byte, err error) {
	m.Responses[buildCommandKey(command, args)] = CommandResponse{
		Output: output,
		Err:    err,
	}
}

// SetFailure configures a command to fail with the given exit status.
func (m *MockCommander) SetFailure(command string, args []string, status int, stderr string) {
	m.SetResponse(command, args, nil, &CommandError{
		Command: command,
		Args:    args,
		Stderr:  stderr,
		Status:  status,
		Err:     fmt.Errorf("exit status %d", status),
	})
}

// LastCall returns the most recent command call.
// Returns nil if no commands have been executed.
func (m *MockCommander) LastCall() *CommandCall {
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}

// CallCount returns the number of commands that have been executed.
func (m *MockCommander) CallCount() int {
	return len(m.Calls)
}

// WasCalled checks if a command with the given arguments was ever executed.
// The command key must match exactly.
func (m *MockCommander) WasCalled(command string, args ...string) bool {
	key := buildCommandKey(command, args)
	for _, call := range m.Calls {
		if call.Key() == key {
			return true
		}
	}
	return false
}

// CalledWithPrefix reports whether any recorded call's key starts with the
// given "command arg1 ..." prefix.
func (m *MockCommander) CalledWithPrefix(command string, args ...string) bool {
	prefix := buildCommandKey(command, args)
	for _, call := range m.Calls {
		if strings.HasPrefix(call.Key(), prefix) {
			return true
		}
	}
	return false
}

// Reset clears all recorded calls and responses.
func (m *MockCommander) Reset() {
	m.Calls = make([]CommandCall, 0)
	m.Responses = make(map[string]CommandResponse)
}

func buildCommandKey(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return fmt.Sprintf("%s %s", command, strings.Join(args, " "))
}
