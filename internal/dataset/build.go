package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/m-daichendt/comp3110/internal/git"
	"github.com/m-daichendt/comp3110/internal/linemap"
)

// ErrEmpty is returned when no pair could be produced.
var ErrEmpty = errors.New("no pairs generated (check commit depth and file availability)")

// BuildOptions bounds a dataset.
type BuildOptions struct {
	MaxPairs    int    // stop after this many records
	TargetLines int    // cap on the total number of mapping rows
	Seed        int64  // shuffles the candidate paths
	CopyDir     string // when set, pair contents are written here
	Engine      linemap.Options
}

// DefaultBuildOptions returns the builder defaults.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		MaxPairs:    25,
		TargetLines: 500,
		Seed:        42,
		Engine:      linemap.DefaultOptions(),
	}
}

// Build maps pairs from src in seeded random path order until MaxPairs
// records or TargetLines rows are collected. The last record is truncated to
// the remaining row budget.
func Build(ctx context.Context, src Source, opts BuildOptions) ([]Record, error) {
	if opts.MaxPairs < 1 || opts.TargetLines < 1 {
		return nil, fmt.Errorf("pairs and target lines must be positive")
	}
	paths, err := src.Paths()
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	rng.Shuffle(len(paths), func(i, j int) { paths[i], paths[j] = paths[j], paths[i] })

	if opts.CopyDir != "" {
		if err := os.MkdirAll(opts.CopyDir, 0755); err != nil {
			return nil, fmt.Errorf("creating copy dir: %w", err)
		}
	}

	var records []Record
	total := 0
	full := func() bool { return total >= opts.TargetLines || len(records) >= opts.MaxPairs }

	for _, p := range paths {
		if full() {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pairs, err := src.Pairs(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		for _, pr := range pairs {
			if full() {
				break
			}
			mappings, err := linemap.MapLines(pr.Old, pr.New, opts.Engine)
			if err != nil {
				return nil, fmt.Errorf("mapping %s: %w", pr.NewName, err)
			}
			entries := Entries(mappings)
			if remaining := opts.TargetLines - total; len(entries) > remaining {
				entries = entries[:remaining]
			}
			total += len(entries)

			rec := Record{
				Pair:     len(records) + 1,
				OldFile:  pr.OldName,
				NewFile:  pr.NewName,
				Mappings: entries,
			}
			if opts.CopyDir != "" {
				if err := copyPair(opts.CopyDir, &rec, pr); err != nil {
					return nil, err
				}
			}
			slog.Debug("dataset.pair", "pair", rec.Pair, "old", rec.OldFile, "new", rec.NewFile, "rows", len(entries))
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return records, nil
}

// copyPair writes pair<N>_old_<base> and pair<N>_new_<base> into dir and
// points rec at the copies.
func copyPair(dir string, rec *Record, pr Pair) error {
	oldDest := filepath.Join(dir, fmt.Sprintf("pair%d_old_%s", rec.Pair, baseName(pr.OldName)))
	newDest := filepath.Join(dir, fmt.Sprintf("pair%d_new_%s", rec.Pair, baseName(pr.NewName)))
	if err := os.WriteFile(oldDest, []byte(joinLines(pr.Old)), 0644); err != nil {
		return fmt.Errorf("copying pair %d: %w", rec.Pair, err)
	}
	if err := os.WriteFile(newDest, []byte(joinLines(pr.New)), 0644); err != nil {
		return fmt.Errorf("copying pair %d: %w", rec.Pair, err)
	}
	rec.OldFile = oldDest
	rec.NewFile = newDest
	return nil
}

func baseName(name string) string {
	if p, _, ok := git.SplitSpec(name); ok {
		name = p
	}
	return path.Base(filepath.ToSlash(name))
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
