package credstore

import "sync"

// Memory is an in-process Store. The zero value is ready to use. It is the
// default backend for short-lived processes and tests; sessions do not
// survive a restart.
type Memory struct {
	mu      sync.RWMutex
	token   string
	profile []byte
	present bool
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.present {
		return "", false
	}
	return m.token, true
}

func (m *Memory) Profile() ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.present {
		return nil, false
	}
	out := make([]byte, len(m.profile))
	copy(out, m.profile)
	return out, true
}

func (m *Memory) Set(token string, profile []byte) {
	snapshot := make([]byte, len(profile))
	copy(snapshot, profile)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.profile = snapshot
	m.present = true
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.profile = nil
	m.present = false
}
