package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 parses one of the RFC3339 timestamp columns. Timestamps are
// stored as text; the field name identifies the offending column on failure.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination adds LIMIT and OFFSET clauses for the filter's positive
// pagination values. Zero means unpaginated.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
