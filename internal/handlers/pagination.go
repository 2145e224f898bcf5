package handlers

import (
	"errors"
	"strconv"
)

// parsePageParam accepts a 1-based page number; empty means the first page.
func parsePageParam(raw string) (int64, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		return 0, errors.New("invalid page")
	}
	return page, nil
}
