// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID parses a positive quote id.
//
// Example:
//
//	id, err := utils.ParseID("42") // 42, nil
//	_, err = utils.ParseID("0")    // error
func ParseID(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return n, nil
}

// ParseIDs parses ids given as separate arguments and/or comma-separated
// lists ("1,2 3"). Duplicates are dropped, keeping first-seen order.
func ParseIDs(args []string) ([]int64, error) {
	seen := make(map[int64]struct{}, len(args))
	out := make([]int64, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := ParseID(part)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out, nil
}
