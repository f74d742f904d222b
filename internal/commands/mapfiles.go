package commands

import (
	"fmt"
	"strings"

	"github.com/m-daichendt/comp3110/internal/linemap"
	"github.com/m-daichendt/comp3110/internal/textfile"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// MapResult holds the mapping of one file pair and the lines it was computed from.
type MapResult struct {
	Mappings []linemap.LineMapping
	Stats    linemap.Stats
	OldLines []string
	NewLines []string
}

// MapFiles reads both files and maps oldPath onto newPath.
func MapFiles(oldPath, newPath string, opts linemap.Options) (*MapResult, error) {
	oldLines, err := textfile.ReadLines(oldPath)
	if err != nil {
		return nil, err
	}
	newLines, err := textfile.ReadLines(newPath)
	if err != nil {
		return nil, err
	}
	mappings, err := linemap.MapLines(oldLines, newLines, opts)
	if err != nil {
		return nil, fmt.Errorf("mapping %s -> %s: %w", oldPath, newPath, err)
	}
	return &MapResult{
		Mappings: mappings,
		Stats:    linemap.Summarize(mappings),
		OldLines: oldLines,
		NewLines: newLines,
	}, nil
}

// Change is the inline diff of a matched pair whose text differs.
type Change struct {
	Old   int
	New   int
	Diffs []diffmatchpatch.Diff
}

// Text renders the diff with deletions as [-x-] and insertions as {+y+}.
func (c Change) Text() string {
	var b strings.Builder
	for _, d := range c.Diffs {
		b.WriteString(Segment(d))
	}
	return b.String()
}

// Segment renders one diff operation with its change markers.
func Segment(d diffmatchpatch.Diff) string {
	switch d.Type {
	case diffmatchpatch.DiffDelete:
		return "[-" + d.Text + "-]"
	case diffmatchpatch.DiffInsert:
		return "{+" + d.Text + "+}"
	default:
		return d.Text
	}
}

// Changes lists the matched pairs of r whose raw text differs, in mapping
// order.
func (r *MapResult) Changes() []Change {
	dmp := diffmatchpatch.New()
	var out []Change
	for _, m := range r.Mappings {
		if !m.HasOld() || !m.HasNew() {
			continue
		}
		a, b := r.OldLines[m.Old-1], r.NewLines[m.New-1]
		if a == b {
			continue
		}
		diffs := dmp.DiffMain(a, b, false)
		diffs = dmp.DiffCleanupSemantic(diffs)
		out = append(out, Change{Old: m.Old, New: m.New, Diffs: diffs})
	}
	return out
}
