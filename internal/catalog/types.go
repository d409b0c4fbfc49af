package catalog

import (
	"context"
	"strings"
)

// Record mirrors one row of the games collection.
type Record struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Platform        string `json:"platform"`
	Category        string `json:"category"`
	NotableFeatures string `json:"notable_features"`
}

// Candidate is a record that has not been assigned an ID by the store yet.
type Candidate struct {
	Name            string `json:"name"`
	Platform        string `json:"platform"`
	Category        string `json:"category"`
	NotableFeatures string `json:"notable_features"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (c Candidate) Trimmed() Candidate {
	return Candidate{
		Name:            strings.TrimSpace(c.Name),
		Platform:        strings.TrimSpace(c.Platform),
		Category:        strings.TrimSpace(c.Category),
		NotableFeatures: strings.TrimSpace(c.NotableFeatures),
	}
}

// Collection is the remote store the engine reads from and writes to.
// List must return records ordered by ID ascending.
type Collection interface {
	List(ctx context.Context) ([]Record, error)
	Insert(ctx context.Context, c Candidate) error
}

// SortKey names a sortable column.
type SortKey string

const (
	SortByID              SortKey = "id"
	SortByName            SortKey = "name"
	SortByPlatform        SortKey = "platform"
	SortByCategory        SortKey = "category"
	SortByNotableFeatures SortKey = "notable_features"
)

// SortKeys lists the columns in display order.
var SortKeys = []SortKey{SortByID, SortByName, SortByPlatform, SortByCategory, SortByNotableFeatures}

// Valid reports whether k is one of the known columns.
func (k SortKey) Valid() bool {
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// ParseSortKey accepts the column names plus a few human spellings.
func ParseSortKey(value string) (SortKey, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	switch normalized {
	case "features", "notable", "notablefeatures":
		return SortByNotableFeatures, true
	}
	key := SortKey(normalized)
	return key, key.Valid()
}

// Text returns the record's value for a text column. SortByID yields "".
func (r Record) Text(k SortKey) string {
	switch k {
	case SortByName:
		return r.Name
	case SortByPlatform:
		return r.Platform
	case SortByCategory:
		return r.Category
	case SortByNotableFeatures:
		return r.NotableFeatures
	default:
		return ""
	}
}

// SortDir is the direction of the active sort.
type SortDir int

const (
	Ascending SortDir = iota
	Descending
)

// Flip returns the opposite direction.
func (d SortDir) Flip() SortDir {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func (d SortDir) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}
