package printer

import "sync"

// Mock records printed lines instead of touching hardware.
type Mock struct {
	mu    sync.Mutex
	Lines []string
	Err   error // returned by PrintLine after recording
}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) PrintLine(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, text)
	return m.Err
}

func (m *Mock) SetErr(e error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = e
}

func (m *Mock) Printed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Lines...)
}
