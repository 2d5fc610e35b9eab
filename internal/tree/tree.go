// Package tree provides the client for the remote hierarchical key-value
// store that holds all plan data. The store is schemaless: values are plain
// nested maps, lists, and scalars addressed by /-joined path segments, with
// no multi-key transactions and no compare-and-swap. Two implementations
// exist — Postgres-backed (production) and in-memory (tests) — sharing one
// value normalization layer so both expose identical semantics.
package tree

import (
	"context"
	"fmt"
	"strings"
)

// Path addresses a node in the tree as a sequence of segments.
// Segments must be non-empty and must not contain '/'.
type Path []string

// NewPath builds a Path from the given segments.
func NewPath(segments ...string) Path {
	return Path(segments)
}

// Child returns a new Path with the given segments appended.
// The receiver is never modified.
func (p Path) Child(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	out = append(out, segments...)
	return out
}

// String renders the path in its /-joined wire form, e.g. "plans/u1/p1".
func (p Path) String() string {
	return strings.Join(p, "/")
}

// Validate reports whether the path is addressable: non-empty, with
// non-empty '/'-free segments.
func (p Path) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("tree: empty path")
	}
	for _, seg := range p {
		if seg == "" {
			return fmt.Errorf("tree: empty path segment in %q", p.String())
		}
		if strings.Contains(seg, "/") {
			return fmt.Errorf("tree: path segment %q contains '/'", seg)
		}
	}
	return nil
}

// Client is the remote tree store interface consumed by the repo layer.
//
// Values passed to Write and returned from Read are JSON-shaped:
// map[string]any, []any, string, float64, bool, or nil. Empty containers and
// empty strings are never stored — writing a value that normalizes to
// nothing removes the node instead, which is why a day with zero activities
// cannot persist.
//
// All operations may block on the network; none retries, and a write that
// fails after a preceding read leaves the remote state unchanged at worst.
type Client interface {
	// Read returns the value of the subtree rooted at path.
	// The second return is false when the node does not exist.
	Read(ctx context.Context, path Path) (any, bool, error)

	// Write replaces the entire subtree at path with value.
	Write(ctx context.Context, path Path, value any) error

	// Remove deletes the subtree at path. Removing an absent node is a no-op.
	Remove(ctx context.Context, path Path) error

	// Exists reports whether a node exists at path.
	Exists(ctx context.Context, path Path) (bool, error)

	// Children returns the direct child keys of the node at path, ordered
	// with integer keys first (numerically) and the rest lexicographically.
	// A leaf or absent node has no children.
	Children(ctx context.Context, path Path) ([]string, error)
}
