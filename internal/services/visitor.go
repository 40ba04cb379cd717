package services

import "github.com/oklog/ulid/v2"

// VisitorPrefix starts every server-generated visitor id.
const VisitorPrefix = "visitor_"

// NewVisitorID returns "visitor_" followed by a ULID, which sorts by
// creation time.
func NewVisitorID() string {
	return VisitorPrefix + ulid.Make().String()
}
