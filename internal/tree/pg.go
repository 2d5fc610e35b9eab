package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PG is the Postgres-backed Client. The tree is stored one row per scalar
// leaf in tree_nodes(path text primary key, value jsonb); subtree reads,
// removals, and existence checks are path-prefix queries. A Write is a
// delete-prefix-then-insert sequence with no surrounding transaction when
// backed by a pool — the store deliberately offers no atomicity, matching
// the remote tree it stands in for.
type PG struct {
	db db
}

// NewPG constructs a Postgres-backed tree client.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPG(db db) *PG {
	return &PG{db: db}
}

var _ Client = (*PG)(nil)

// Read assembles the subtree rooted at path from its leaf rows.
func (c *PG) Read(ctx context.Context, path Path) (any, bool, error) {
	if err := path.Validate(); err != nil {
		return nil, false, err
	}

	const q = `
		SELECT path, value
		FROM tree_nodes
		WHERE path = @path OR starts_with(path, @prefix)
		ORDER BY path`

	rows, err := c.db.Query(ctx, q, pgx.NamedArgs{
		"path":   path.String(),
		"prefix": path.String() + "/",
	})
	if err != nil {
		return nil, false, fmt.Errorf("tree.PG.Read: %w", err)
	}
	defer rows.Close()

	leaves := map[string]any{}
	base := path.String()
	for rows.Next() {
		var (
			p   string
			raw []byte
		)
		if err := rows.Scan(&p, &raw); err != nil {
			return nil, false, fmt.Errorf("tree.PG.Read: scan: %w", err)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, false, fmt.Errorf("tree.PG.Read: decode %q: %w", p, err)
		}
		leaves[strings.TrimPrefix(strings.TrimPrefix(p, base), "/")] = v
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("tree.PG.Read: rows: %w", err)
	}

	if len(leaves) == 0 {
		return nil, false, nil
	}
	return unflatten(leaves), true, nil
}

// Write replaces the subtree at path: the existing prefix is deleted, then
// one row is inserted per scalar leaf of the normalized value. A value that
// normalizes to nothing removes the node instead.
func (c *PG) Write(ctx context.Context, path Path, value any) error {
	if err := path.Validate(); err != nil {
		return err
	}
	node, err := normalize(value)
	if err != nil {
		return err
	}
	if node == nil {
		return c.Remove(ctx, path)
	}

	if err := c.Remove(ctx, path); err != nil {
		return fmt.Errorf("tree.PG.Write: %w", err)
	}

	leaves := map[string]any{}
	flatten("", node, leaves)

	// Deterministic insert order keeps failures reproducible.
	rels := make([]string, 0, len(leaves))
	for rel := range leaves {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	const q = `INSERT INTO tree_nodes (path, value) VALUES (@path, @value)`
	base := path.String()
	for _, rel := range rels {
		p := base
		if rel != "" {
			p = base + "/" + rel
		}
		raw, err := json.Marshal(leaves[rel])
		if err != nil {
			return fmt.Errorf("tree.PG.Write: encode %q: %w", p, err)
		}
		if _, err := c.db.Exec(ctx, q, pgx.NamedArgs{"path": p, "value": raw}); err != nil {
			return fmt.Errorf("tree.PG.Write: insert %q: %w", p, err)
		}
	}
	return nil
}

// Remove deletes the subtree at path. Removing an absent node is a no-op.
func (c *PG) Remove(ctx context.Context, path Path) error {
	if err := path.Validate(); err != nil {
		return err
	}

	const q = `DELETE FROM tree_nodes WHERE path = @path OR starts_with(path, @prefix)`
	_, err := c.db.Exec(ctx, q, pgx.NamedArgs{
		"path":   path.String(),
		"prefix": path.String() + "/",
	})
	if err != nil {
		return fmt.Errorf("tree.PG.Remove: %w", err)
	}
	return nil
}

// Exists reports whether any leaf exists at or below path.
func (c *PG) Exists(ctx context.Context, path Path) (bool, error) {
	if err := path.Validate(); err != nil {
		return false, err
	}

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM tree_nodes
			WHERE path = @path OR starts_with(path, @prefix)
		)`

	var exists bool
	err := c.db.QueryRow(ctx, q, pgx.NamedArgs{
		"path":   path.String(),
		"prefix": path.String() + "/",
	}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("tree.PG.Exists: %w", err)
	}
	return exists, nil
}

// Children returns the ordered direct child keys of the node at path.
func (c *PG) Children(ctx context.Context, path Path) ([]string, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}

	// substring is 1-based; skip "<path>/" to get each row's relative path.
	const q = `
		SELECT DISTINCT split_part(substring(path FROM @skip), '/', 1)
		FROM tree_nodes
		WHERE starts_with(path, @prefix)`

	rows, err := c.db.Query(ctx, q, pgx.NamedArgs{
		"skip":   len(path.String()) + 2,
		"prefix": path.String() + "/",
	})
	if err != nil {
		return nil, fmt.Errorf("tree.PG.Children: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("tree.PG.Children: scan: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tree.PG.Children: rows: %w", err)
	}

	sortChildKeys(keys)
	return keys, nil
}
