package locals

import (
	"fmt"
	"maps"
	"strings"
)

// Merge returns a new map holding base's entries
// overridden by extra's. Neither input is modified.
func Merge(base, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))

	maps.Copy(merged, base)
	maps.Copy(merged, extra)

	return merged
}

// ParseAssignment splits a NAME=VALUE pair on the first
// "=".
func ParseAssignment(assign string) (string, string, error) {
	const errCtx = "parsing assignment"

	parts := strings.SplitN(assign, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", fmt.Errorf(
			"%s: variable must be NAME=value, got %s",
			errCtx, assign,
		)
	}

	return parts[0], parts[1], nil
}
