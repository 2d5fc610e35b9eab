package tree

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// normalize converts an arbitrary JSON-marshalable value into the canonical
// stored form: nested map[string]any nodes with scalar leaves (string,
// float64, bool). Lists become integer-keyed maps ("0", "1", ...). Empty
// strings, empty containers, and nils are dropped; a value that normalizes
// to nil means "nothing to store" and callers treat the write as a removal.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("tree: normalize: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return nil, fmt.Errorf("tree: normalize: %w", err)
	}
	return canonicalize(decoded), nil
}

func canonicalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			if c := canonicalize(child); c != nil {
				out[k] = c
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make(map[string]any, len(t))
		for i, child := range t {
			if c := canonicalize(child); c != nil {
				out[strconv.Itoa(i)] = c
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return t
	default:
		return t
	}
}

// denormalize converts a canonical node back into the client-facing form,
// turning maps whose keys are all canonical non-negative integers into
// ordered []any slices. Gaps in the integer sequence are dropped, not padded:
// the engine always rewrites whole lists, so stored lists stay dense.
func denormalize(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	allInt := len(m) > 0
	maxIdx := -1
	for k, child := range m {
		out[k] = denormalize(child)
		if i, ok := parseIndex(k); !ok {
			allInt = false
		} else if i > maxIdx {
			maxIdx = i
		}
	}
	if !allInt {
		return out
	}
	list := make([]any, 0, len(out))
	for i := 0; i <= maxIdx; i++ {
		if c, ok := out[strconv.Itoa(i)]; ok {
			list = append(list, c)
		}
	}
	return list
}

// flatten writes every scalar leaf of a canonical node into out, keyed by
// the /-joined path relative to the node root. A scalar node yields one
// entry under the empty key.
func flatten(prefix string, node any, out map[string]any) {
	m, ok := node.(map[string]any)
	if !ok {
		out[prefix] = node
		return
	}
	for k, child := range m {
		p := k
		if prefix != "" {
			p = prefix + "/" + k
		}
		flatten(p, child, out)
	}
}

// unflatten rebuilds a client-facing value from relative-path leaves, the
// inverse of flatten followed by denormalize.
func unflatten(leaves map[string]any) any {
	if v, ok := leaves[""]; ok && len(leaves) == 1 {
		return denormalize(v)
	}
	root := map[string]any{}
	for rel, v := range leaves {
		segs := strings.Split(rel, "/")
		node := root
		for _, s := range segs[:len(segs)-1] {
			child, ok := node[s].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[s] = child
			}
			node = child
		}
		node[segs[len(segs)-1]] = v
	}
	return denormalize(root)
}

// sortChildKeys orders child keys the way the store iterates them:
// canonical integer keys first in numeric order, then the rest
// lexicographically.
func sortChildKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })
}

func lessKey(a, b string) bool {
	ai, aok := parseIndex(a)
	bi, bok := parseIndex(b)
	switch {
	case aok && bok:
		return ai < bi
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

// parseIndex reports whether s is a canonical non-negative integer key
// ("3" qualifies, "03" and "-1" do not).
func parseIndex(s string) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 || strconv.Itoa(i) != s {
		return 0, false
	}
	return i, true
}
