package records

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

var ErrMalformedAllowList = errors.New("malformed allow-list value")

// DecodeAllowList decodes a stored allow-list field value into its entries.
// The canonical representation is a JSON array of strings inside the record
// document; a JSON-encoded string holding such an array and a single bare
// address string are also accepted because observed producers disagree.
// Entries are strict strings: any non-string element fails the whole decode
// (fail closed, not skip-and-continue).
func DecodeAllowList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, ErrMalformedAllowList
	case []string:
		return v, nil
	case []any:
		return decodeEntries(v)
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("%w: unsupported type %T", ErrMalformedAllowList, value)
		}
		var items []any
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			return decodeEntries(items)
		}
		// a single bare address entry
		return []string{s}, nil
	}
}

func decodeEntries(items []any) ([]string, error) {
	entries := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is %T, not string", ErrMalformedAllowList, i, item)
		}
		entries = append(entries, s)
	}
	return entries, nil
}
