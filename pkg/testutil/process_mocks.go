package testutil

import (
	"context"
	"sync"

	"github.com/Veraticus/alert/pkg/process"
)

// RunStep scripts one invocation of a MockRunner
type RunStep struct {
	Result *process.Result
	Err    error

	// OnRun is called before the step returns, e.g. to advance a MockClock
	OnRun func()
}

// Exited builds the result of a child that exited with code
func Exited(code int, stdout, stderr string) *process.Result {
	return &process.Result{
		ExitCode: &code,
		Success:  code == 0,
		Stdout:   []byte(stdout),
		Stderr:   []byte(stderr),
	}
}

// Killed builds the result of a child that ended without an exit code
func Killed(stdout, stderr string) *process.Result {
	return &process.Result{
		Stdout: []byte(stdout),
		Stderr: []byte(stderr),
	}
}

// MockRunner is a mock implementation of process.Runner.
// Steps are consumed in order; the last step repeats once the script runs out.
type MockRunner struct {
	mu    sync.Mutex
	steps []RunStep
	calls []process.Command
}

// NewMockRunner creates a runner playing back steps
func NewMockRunner(steps ...RunStep) *MockRunner {
	return &MockRunner{steps: steps}
}

// Run implements the process.Runner interface
func (m *MockRunner) Run(ctx context.Context, cmd process.Command) (*process.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	idx := len(m.calls) - 1
	var step RunStep
	if len(m.steps) > 0 {
		if idx >= len(m.steps) {
			idx = len(m.steps) - 1
		}
		step = m.steps[idx]
	} else {
		step = RunStep{Result: Exited(0, "", "")}
	}
	m.mu.Unlock()

	if step.OnRun != nil {
		step.OnRun()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if step.Err != nil {
		return nil, step.Err
	}
	return step.Result, nil
}

// Calls returns the commands that were run
func (m *MockRunner) Calls() []process.Command {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]process.Command, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns how many times Run was called
func (m *MockRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
