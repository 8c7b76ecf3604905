package qti

import (
	"fmt"
	"sync"
)

// A UniqueIdentifier is an identifier that is unique within the scope of one
// authored package. QTI identifiers must start with a letter or underscore,
// contain no colons, and are compared case-sensitively; the generated form
// "<TypeName>-<counter>" satisfies those rules by construction. Two
// identifiers are equal iff their string values are equal.
type UniqueIdentifier string

func (id UniqueIdentifier) String() string { return string(id) }

// IDRegistry hands out process-unique identifiers, one counter per entity
// type. Counters start at zero and are never reloaded; identifiers only need
// to stay unique for the lifetime of a single export.
//
// A registry is safe for concurrent use. Export runs on a single goroutine
// today, but the HTTP layer may build several packages at once, each with its
// own registry.
type IDRegistry struct {
	mu       sync.Mutex
	counters map[string]uint64
}

func NewIDRegistry() *IDRegistry {
	return &IDRegistry{counters: map[string]uint64{}}
}

// Next returns the next identifier for the given entity type, formatted as
// "<typeName>-<counter>" with the counter rendered as four lowercase hex
// digits.
func (r *IDRegistry) Next(typeName string) UniqueIdentifier {
	r.mu.Lock()
	n := r.counters[typeName]
	r.counters[typeName] = n + 1
	r.mu.Unlock()
	return UniqueIdentifier(fmt.Sprintf("%s-%04x", typeName, n))
}
