// Package records exposes the read-only view of the record store that
// authentication needs: collection resolution, field introspection and
// record lookup by field value.
package records

import (
	"context"
	"errors"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrRecordNotFound     = errors.New("record not found")
	ErrMalformedSchema    = errors.New("malformed collection schema")
)

// Collection is the resolved view of a schema-bearing collection.
type Collection struct {
	ID     uint
	Name   string
	Type   string
	Fields []string
}

// IsAuth reports whether the collection is designated to hold identities
// that can authenticate.
func (c *Collection) IsAuth() bool {
	return c.Type == "auth"
}

func (c *Collection) HasField(name string) bool {
	for _, field := range c.Fields {
		if field == name {
			return true
		}
	}
	return false
}

// Record is a resolved record with its decoded field values.
type Record struct {
	ID           uint
	CollectionID uint
	Data         map[string]any
}

// Get returns the value of a named field, nil if unset.
func (r *Record) Get(field string) any {
	return r.Data[field]
}

// Store resolves collections and records. Implementations must use
// parameterized lookups only; field values are never spliced into query
// text.
type Store interface {
	FindCollection(ctx context.Context, name string) (*Collection, error)
	FindRecordByField(ctx context.Context, collection *Collection, field string, value string) (*Record, error)
}
