package tree

import (
	"context"
	"sync"
)

// Memory is an in-process Client used by unit tests. It holds the whole
// tree as one canonical nested map behind a mutex, so tests exercise the
// exact same value semantics (empty-node pruning, list reassembly, child
// ordering) as the Postgres implementation.
type Memory struct {
	mu   sync.RWMutex
	root map[string]any
}

// NewMemory returns an empty in-memory tree.
func NewMemory() *Memory {
	return &Memory{root: map[string]any{}}
}

var _ Client = (*Memory)(nil)

// Read returns the denormalized subtree at path.
func (m *Memory) Read(ctx context.Context, path Path) (any, bool, error) {
	if err := path.Validate(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, ok := m.lookup(path)
	if !ok {
		return nil, false, nil
	}
	return denormalize(node), true, nil
}

// Write replaces the subtree at path. A value that normalizes to nothing
// removes the node instead, matching the store's empty-node semantics.
func (m *Memory) Write(ctx context.Context, path Path, value any) error {
	if err := path.Validate(); err != nil {
		return err
	}
	node, err := normalize(value)
	if err != nil {
		return err
	}
	if node == nil {
		return m.Remove(ctx, path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	parent := m.root
	for _, seg := range path[:len(path)-1] {
		child, ok := parent[seg].(map[string]any)
		if !ok {
			// Writing below a scalar or absent node materializes the branch.
			child = map[string]any{}
			parent[seg] = child
		}
		parent = child
	}
	parent[path[len(path)-1]] = node
	return nil
}

// Remove deletes the subtree at path and prunes any parents left empty.
func (m *Memory) Remove(ctx context.Context, path Path) error {
	if err := path.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	removeAt(m.root, path)
	return nil
}

// Exists reports whether a node exists at path.
func (m *Memory) Exists(ctx context.Context, path Path) (bool, error) {
	if err := path.Validate(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.lookup(path)
	return ok, nil
}

// Children returns the ordered direct child keys of the node at path.
func (m *Memory) Children(ctx context.Context, path Path) ([]string, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, ok := m.lookup(path)
	if !ok {
		return nil, nil
	}
	branch, ok := node.(map[string]any)
	if !ok {
		return nil, nil
	}
	keys := make([]string, 0, len(branch))
	for k := range branch {
		keys = append(keys, k)
	}
	sortChildKeys(keys)
	return keys, nil
}

// lookup walks the canonical tree to the node at path.
// Callers must hold at least the read lock.
func (m *Memory) lookup(path Path) (any, bool) {
	var node any = m.root
	for _, seg := range path {
		branch, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = branch[seg]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// removeAt deletes path from node, reporting whether node itself became
// empty so the caller can prune it.
func removeAt(node map[string]any, path Path) bool {
	seg := path[0]
	if len(path) == 1 {
		delete(node, seg)
		return len(node) == 0
	}
	child, ok := node[seg].(map[string]any)
	if !ok {
		return false
	}
	if removeAt(child, path[1:]) {
		delete(node, seg)
	}
	return len(node) == 0
}
