package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Cursors are opaque base64url tokens wrapping the last-seen ordering key (row
// id). A page query resumes strictly after the decoded id.

const (
	DefaultPageSize = 15
	MaxPageSize     = 100
)

var ErrMalformedCursor = errors.New("malformed pagination cursor")

func Encode(lastID int64) string {
	raw := fmt.Sprintf("id|%d", lastID)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func Decode(token string) (int64, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrMalformedCursor
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[0] != "id" {
		return 0, ErrMalformedCursor
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id < 0 {
		return 0, ErrMalformedCursor
	}
	return id, nil
}

// DecodeOrFirst is the tolerant form used on query paths: an empty or
// unparseable token degrades to the first page instead of failing the request.
func DecodeOrFirst(token string) int64 {
	if token == "" {
		return 0
	}
	id, err := Decode(token)
	if err != nil {
		return 0
	}
	return id
}

// ClampPageSize normalizes a caller-supplied page size.
func ClampPageSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Page is the shared cursor-paginated result envelope.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
	HasMore    bool    `json:"has_more"`
}

// NewPage trims an overfetched (limit+1) slice down to limit and derives the
// next cursor from the last retained ordering key.
func NewPage[T any](items []T, limit int, lastID func(T) int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	if len(items) <= limit {
		return Page[T]{Items: items}
	}
	items = items[:limit]
	cursor := Encode(lastID(items[limit-1]))
	return Page[T]{Items: items, NextCursor: &cursor, HasMore: true}
}
