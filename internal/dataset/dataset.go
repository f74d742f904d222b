// Package dataset samples old/new file pairs, maps them and stores the
// resulting line correspondences as JSON.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/m-daichendt/comp3110/internal/linemap"
)

// Entry is one mapping row. A nil side is absent.
type Entry struct {
	Orig *int `json:"orig"`
	New  *int `json:"new"`
}

// Record is one mapped file pair.
type Record struct {
	Pair     int     `json:"pair"`
	OldFile  string  `json:"old_file"`
	NewFile  string  `json:"new_file"`
	Mappings []Entry `json:"mappings"`
}

// Entries converts engine output to dataset rows.
func Entries(mappings []linemap.LineMapping) []Entry {
	out := make([]Entry, 0, len(mappings))
	for _, m := range mappings {
		var e Entry
		if m.HasOld() {
			e.Orig = intPtr(m.Old)
		}
		if m.HasNew() {
			e.New = intPtr(m.New)
		}
		out = append(out, e)
	}
	return out
}

func intPtr(n int) *int { return &n }

// Rows returns the total number of mapping rows across records.
func Rows(records []Record) int {
	n := 0
	for _, r := range records {
		n += len(r.Mappings)
	}
	return n
}

// Read loads a dataset file.
func Read(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return records, nil
}

// Write stores records as an indented JSON array.
func Write(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	return nil
}
