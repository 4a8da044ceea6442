package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the query contract shared by both persistence backends. The
// implementation is chosen once at startup: Cloudflare D1 over HTTP when
// configured, an in-process sqlite database otherwise. Repositories are
// written against this interface only, so every invariant is enforced
// identically on both paths.
type Store interface {
	// Query executes a single SQL statement with positional parameters
	// and returns its result rows (empty for statements that produce
	// none).
	Query(ctx context.Context, query string, params ...any) ([]Row, error)
}

// Row is one result row keyed by column name. Values arrive as whatever
// the backend produced (float64 from the D1 JSON decoder, int64 from the
// sqlite driver), so access goes through the typed accessors below.
type Row map[string]any

// Int64 returns the named column as int64, or 0 when absent, null or not
// numeric.
func (r Row) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// String returns the named column as a string, or "" when absent or null.
func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// IsNull reports whether the named column is absent or SQL NULL.
func (r Row) IsNull(key string) bool {
	v, ok := r[key]
	return !ok || v == nil
}

// BackendError signals that the remote store was unreachable or returned
// a malformed or failed response. It is surfaced as a generic failure and
// never retried automatically.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend request failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend request failed: %s", e.Message)
}
