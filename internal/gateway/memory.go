package gateway

import (
	"sync"
)

// Memory is a map-backed Store. Nodes must be created parent first, as in
// ZooKeeper.
type Memory struct {
	mu    sync.RWMutex
	nodes map[string][]byte
}

// NewMemory returns a store that only contains the root node.
func NewMemory() *Memory {
	return &Memory{nodes: map[string][]byte{"/": nil}}
}

func (m *Memory) ListChildren(p string) ([]string, error) {
	p = Clean(p)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.nodes[p]; !ok {
		return nil, opError("list", p, ErrNotFound)
	}
	var names []string
	for candidate := range m.nodes {
		if candidate != "/" && Parent(candidate) == p {
			names = append(names, Base(candidate))
		}
	}
	return children(p, names)
}

func (m *Memory) ReadValue(p string) (string, error) {
	p = Clean(p)
	m.mu.RLock()
	data, ok := m.nodes[p]
	m.mu.RUnlock()
	if !ok {
		return "", opError("read", p, ErrNotFound)
	}
	return decodeValue(p, data)
}

func (m *Memory) Exists(p string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.nodes[Clean(p)]
	return ok, nil
}

func (m *Memory) Create(p string, data []byte) error {
	p = Clean(p)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.nodes[p]; ok {
		return opError("create", p, ErrNodeExists)
	}
	if _, ok := m.nodes[Parent(p)]; !ok {
		return opError("create", p, ErrNotFound)
	}
	m.nodes[p] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
