package runner

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Invocation is one recorded call to MockRunner.Run.
type Invocation struct {
	Name    string
	Args    []string
	Timeout time.Duration
	Mode    Mode
}

// Key is the lookup key used by AddResponse.
func (i Invocation) Key() string {
	return invocationKey(i.Name, i.Args...)
}

type mockResult struct {
	out []byte
	err error
}

// MockRunner records invocations instead of running anything. Responses are
// matched by exact command line; unmatched calls succeed with no output.
type MockRunner struct {
	mu        sync.Mutex
	Commands  []Invocation
	responses map[string]mockResult
}

func NewMockRunner() *MockRunner {
	return &MockRunner{responses: map[string]mockResult{}}
}

func (m *MockRunner) Run(_ context.Context, timeout time.Duration, mode Mode, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv := Invocation{Name: name, Args: append([]string(nil), args...), Timeout: timeout, Mode: mode}
	m.Commands = append(m.Commands, inv)

	if r, ok := m.responses[inv.Key()]; ok {
		return r.out, r.err
	}
	return nil, nil
}

func (m *MockRunner) AddResponse(key string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[key] = mockResult{out: output, err: err}
}

func (m *MockRunner) VerifyCommand(name string, args ...string) bool {
	want := invocationKey(name, args...)
	for _, inv := range m.calls() {
		if inv.Key() == want {
			return true
		}
	}
	return false
}

func (m *MockRunner) VerifyRunCount(name string, count int) bool {
	n := 0
	for _, inv := range m.calls() {
		if inv.Name == name {
			n++
		}
	}
	return n == count
}

func (m *MockRunner) calls() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Invocation(nil), m.Commands...)
}

func invocationKey(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), "\x00")
}

// ShellKey is the response key for a command string run through "sh -c".
func ShellKey(command string) string {
	return invocationKey("sh", "-c", command)
}
