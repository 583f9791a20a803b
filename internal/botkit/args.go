package botkit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON decodes command arguments given as a JSON object.
func ParseJSON[T any](src string) (T, error) {
	var args T

	if err := json.Unmarshal([]byte(src), &args); err != nil {
		return *(new(T)), fmt.Errorf("parsing arguments %q: %w", src, err)
	}

	return args, nil
}

// SplitArgs splits command arguments into at most n whitespace separated
// fields; the last field keeps the rest of the line.
func SplitArgs(src string, n int) []string {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil
	}

	fields := strings.Fields(src)
	if len(fields) <= n {
		return fields
	}

	out := append([]string{}, fields[:n-1]...)
	rest := src
	for _, f := range fields[:n-1] {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, f))
	}
	return append(out, rest)
}
