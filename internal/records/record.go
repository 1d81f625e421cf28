// Package records defines the record model served by the data API, the page
// envelope it arrives in, and the pure operations the table applies to a loaded
// page: substring search and multi-row selection.
package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrInvalidID is returned when a record id is neither a JSON number nor a string.
var ErrInvalidID = errors.New("record id must be a number or a string")

// ID identifies a record. The API sends numeric ids, but ids are treated as
// opaque so string ids decode as well.
type ID string

// UnmarshalJSON accepts both `17` and `"17"`.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ErrInvalidID
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidID
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids back as JSON numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Int reports the id as an integer when it is numeric.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

// Less orders numeric ids numerically and everything else lexically.
func (id ID) Less(other ID) bool {
	a, aok := id.Int()
	b, bok := other.Int()
	switch {
	case aok && bok:
		return a < b
	case aok != bok:
		// numbers sort before strings
		return aok
	default:
		return id < other
	}
}

// Record is a single row of the table.
type Record struct {
	ID    ID     `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Page is the response envelope of GET /api/data/page/{n}.
type Page struct {
	Items      []Record `json:"items"      yaml:"items"`
	Total      int      `json:"total"      yaml:"total"`
	TotalPages int      `json:"totalPages" yaml:"totalPages"`
}
