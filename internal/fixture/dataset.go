// Package fixture serves record pages in the data API's wire format from a
// local dataset, for development against a predictable backend and for tests.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/pagetable/internal/records"
)

//nolint:gochecknoglobals // Fixed name pools for deterministic data.
var (
	firstNames = []string{
		"Ann", "Bob", "Cara", "Dmitri", "Elena", "Farid", "Grace", "Hiro", "Ines", "Jonas",
		"Kemi", "Liam", "Maya", "Noor", "Oscar", "Priya", "Quinn", "Rosa", "Sven", "Tariq",
	}
	lastNames = []string{
		"Adams", "Brook", "Chen", "Diaz", "Evans", "Fischer", "Garcia", "Hansen", "Ito", "Jensen",
		"Kowalski", "Larsen", "Moreau", "Nakamura", "Okafor", "Petrov", "Quint", "Rossi", "Silva", "Tanaka",
	}
	domains = []string{"example.com", "example.org", "mail.test"}
)

// Generate returns count deterministic records with ids 1..count.
func Generate(count int) []records.Record {
	out := make([]records.Record, 0, count)
	for i := 0; i < count; i++ {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames))%len(lastNames)]
		out = append(out, records.Record{
			ID:    records.ID(strconv.Itoa(i + 1)),
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i+1, domains[i%len(domains)]),
		})
	}
	return out
}

// fileData is the on-disk dataset shape: either a bare list or {items: [...]}.
type fileData struct {
	Items []records.Record `json:"items" yaml:"items"`
}

// LoadFile reads records from a YAML or JSON file. JSON files may hold either
// a list of records or an object with an items list.
func LoadFile(path string) ([]records.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file %s: %w", path, err)
	}

	var items []records.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		items, err = decodeJSON(data)
	default:
		items, err = decodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing fixture file %s: %w", path, err)
	}
	return items, nil
}

func decodeJSON(data []byte) ([]records.Record, error) {
	var list []records.Record
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped fileData
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Items, nil
}

// yamlRecord decodes ids written as either numbers or strings.
type yamlRecord struct {
	ID    yaml.Node `yaml:"id"`
	Name  string    `yaml:"name"`
	Email string    `yaml:"email"`
}

func decodeYAML(data []byte) ([]records.Record, error) {
	var list []yamlRecord
	if err := yaml.Unmarshal(data, &list); err != nil {
		var wrapped struct {
			Items []yamlRecord `yaml:"items"`
		}
		if err := yaml.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		list = wrapped.Items
	}

	out := make([]records.Record, 0, len(list))
	for i, r := range list {
		if r.ID.Kind != yaml.ScalarNode || r.ID.Value == "" {
			return nil, fmt.Errorf("record %d: %w", i, records.ErrInvalidID)
		}
		out = append(out, records.Record{ID: records.ID(r.ID.Value), Name: r.Name, Email: r.Email})
	}
	return out, nil
}
