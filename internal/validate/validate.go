// Package validate recomputes line mappings and compares them with stored
// expectations.
package validate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/m-daichendt/comp3110/internal/dataset"
	"github.com/m-daichendt/comp3110/internal/fixture"
	"github.com/m-daichendt/comp3110/internal/linemap"
	"golang.org/x/sync/errgroup"
)

// Options controls a validation run.
type Options struct {
	Engine  linemap.Options
	Workers int // pairs validated concurrently
}

// DefaultOptions returns the engine defaults and as many pair workers as
// span workers.
func DefaultOptions() Options {
	e := linemap.DefaultOptions()
	return Options{Engine: e, Workers: e.Workers}
}

// PairResult is the outcome for one dataset record.
type PairResult struct {
	Pair     int
	OldFile  string
	NewFile  string
	Checked  int      // expected rows compared
	Failures []string // one message per mismatch or read error
}

// Passed reports whether the pair matched every expected row.
func (r PairResult) Passed() bool { return len(r.Failures) == 0 }

// Report is the outcome of a dataset validation.
type Report struct {
	Pairs  []PairResult // in dataset order
	Passed int
	Failed int
}

// Failures returns every failure message in dataset order.
func (r *Report) Failures() []string {
	var out []string
	for _, p := range r.Pairs {
		out = append(out, p.Failures...)
	}
	return out
}

// Text renders the report as printed and stored in the results file.
func (r *Report) Text() string {
	if r.Failed == 0 {
		return fmt.Sprintf("All %d pairs validated successfully.\n", r.Passed)
	}
	var b strings.Builder
	b.WriteString("FAILED:\n")
	for _, f := range r.Failures() {
		fmt.Fprintf(&b, " - %s\n", f)
	}
	fmt.Fprintf(&b, "\nSummary: %d pairs validated; %d passed, %d failed.\n", r.Passed+r.Failed, r.Passed, r.Failed)
	return b.String()
}

// Dataset validates every record. A record whose files cannot be read or
// mapped becomes a failed pair; the run continues.
func Dataset(ctx context.Context, records []dataset.Record, reader Reader, opts Options) (*Report, error) {
	results := make([]PairResult, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = validatePair(rec, reader, opts.Engine)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{Pairs: results}
	for _, r := range results {
		if r.Passed() {
			rep.Passed++
		} else {
			rep.Failed++
		}
	}
	return rep, nil
}

func validatePair(rec dataset.Record, reader Reader, engine linemap.Options) PairResult {
	res := PairResult{Pair: rec.Pair, OldFile: rec.OldFile, NewFile: rec.NewFile}
	label := displayName(rec.OldFile) + " -> " + displayName(rec.NewFile)

	actual, err := mapFiles(reader, rec.OldFile, rec.NewFile, engine)
	if err != nil {
		slog.Warn("validate.pair_unreadable", "pair", rec.Pair, "old", rec.OldFile, "new", rec.NewFile, "error", err)
		res.Failures = []string{fmt.Sprintf("%s: %v", label, err)}
		return res
	}

	for _, e := range rec.Mappings {
		if e.Orig == nil {
			continue
		}
		res.Checked++
		got := lookup(actual, *e.Orig)
		if !sameLine(e.New, got) {
			res.Failures = append(res.Failures, fmt.Sprintf("%s orig %d: expected %s, got %s",
				label, *e.Orig, lineValue(e.New), lineValue(got)))
		}
	}
	return res
}

// mapFiles maps oldRef onto newRef and returns old line -> new line, 0 for
// deleted lines. The first entry for an old line wins.
func mapFiles(reader Reader, oldRef, newRef string, engine linemap.Options) (map[int]int, error) {
	oldLines, err := reader.ReadLines(oldRef)
	if err != nil {
		return nil, err
	}
	newLines, err := reader.ReadLines(newRef)
	if err != nil {
		return nil, err
	}
	mappings, err := linemap.MapLines(oldLines, newLines, engine)
	if err != nil {
		return nil, err
	}
	out := make(map[int]int, len(oldLines))
	for _, m := range mappings {
		if !m.HasOld() {
			continue
		}
		if _, seen := out[m.Old]; !seen {
			out[m.Old] = m.New
		}
	}
	return out, nil
}

func sameLine(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func lineValue(n *int) string {
	if n == nil {
		return "null"
	}
	return strconv.Itoa(*n)
}

// CaseResult is the outcome for one fixture test case.
type CaseResult struct {
	File     string
	Failures []string
}

// FixtureReport is the outcome of a fixture validation.
type FixtureReport struct {
	Cases  []CaseResult
	Passed int
	Failed int
}

// Text renders the report.
func (r *FixtureReport) Text() string {
	total := r.Passed + r.Failed
	if r.Failed == 0 {
		return fmt.Sprintf("All %d test cases passed.\n", total)
	}
	var b strings.Builder
	b.WriteString("FAILED:\n")
	for _, c := range r.Cases {
		for _, f := range c.Failures {
			fmt.Fprintf(&b, " - %s\n", f)
		}
	}
	fmt.Fprintf(&b, "\nSummary: %d/%d cases passed; %d failed.\n", r.Passed, total, r.Failed)
	return b.String()
}

// Fixture validates each case by mapping every version onto the next one
// and checking the locations recorded on the later version.
func Fixture(ctx context.Context, cases []fixture.TestCase, reader Reader, opts Options) (*FixtureReport, error) {
	results := make([]CaseResult, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, tc := range cases {
		i, tc := i, tc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = validateCase(tc, reader, opts.Engine)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &FixtureReport{Cases: results}
	for _, r := range results {
		if len(r.Failures) == 0 {
			rep.Passed++
		} else {
			rep.Failed++
		}
	}
	return rep, nil
}

func validateCase(tc fixture.TestCase, reader Reader, engine linemap.Options) CaseResult {
	res := CaseResult{File: tc.File}
	name := tc.File
	if name == "" {
		name = "<unknown>"
	}

	versions := append([]fixture.Version(nil), tc.Versions...)
	sort.SliceStable(versions, func(i, j int) bool { return versions[i].Number < versions[j].Number })

	for k := 0; k+1 < len(versions); k++ {
		prev, cur := versions[k], versions[k+1]
		if prev.JavaPath == nil || *prev.JavaPath == "" {
			res.Failures = append(res.Failures, fmt.Sprintf("%s v%d: missing java file", name, prev.Number))
			continue
		}
		if cur.JavaPath == nil || *cur.JavaPath == "" {
			res.Failures = append(res.Failures, fmt.Sprintf("%s v%d: missing java file", name, cur.Number))
			continue
		}
		label := fmt.Sprintf("%s v%d -> v%d", name, prev.Number, cur.Number)
		actual, err := mapFiles(reader, *prev.JavaPath, *cur.JavaPath, engine)
		if err != nil {
			slog.Warn("validate.pair_unreadable", "file", name, "from", prev.Number, "to", cur.Number, "error", err)
			res.Failures = append(res.Failures, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		for _, loc := range cur.Locations {
			got := lookup(actual, loc.Orig)
			if !sameLine(loc.New, got) {
				res.Failures = append(res.Failures, fmt.Sprintf("%s orig %d: expected %s, got %s",
					label, loc.Orig, lineValue(loc.New), lineValue(got)))
			}
		}
	}
	return res
}

// lookup returns the new line mapped from orig, nil when it was deleted or
// is out of range.
func lookup(actual map[int]int, orig int) *int {
	got, ok := actual[orig]
	if !ok || got == 0 {
		return nil
	}
	return &got
}
