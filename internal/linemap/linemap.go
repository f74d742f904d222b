package linemap

import (
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Origin records which stage produced a LineMapping.
type Origin int

const (
	// OriginUnmatched marks a pure deletion or insertion.
	OriginUnmatched Origin = iota
	// OriginAnchor marks a pair from an equal alignment run.
	OriginAnchor
	// OriginSolver marks a pair chosen by similarity matching.
	OriginSolver
)

func (o Origin) String() string {
	switch o {
	case OriginAnchor:
		return "anchor"
	case OriginSolver:
		return "solver"
	default:
		return "unmatched"
	}
}

// LineMapping is one entry of the result. Old and New are 1-based line numbers;
// zero means the side is absent (Old == 0 is an insertion, New == 0 a deletion).
type LineMapping struct {
	Old    int
	New    int
	Origin Origin
}

// HasOld reports whether the entry has an old line.
func (m LineMapping) HasOld() bool { return m.Old > 0 }

// HasNew reports whether the entry has a new line.
func (m LineMapping) HasNew() bool { return m.New > 0 }

// String renders the entry as "<old> -> <new>" with "-" for an absent side.
func (m LineMapping) String() string {
	return lineLabel(m.Old) + " -> " + lineLabel(m.New)
}

func lineLabel(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

// Options holds every tunable of the matcher.
type Options struct {
	ContentWeight     float64 // weight of content similarity in a pair score
	ContextWeight     float64 // weight of context similarity in a pair score
	PositionBonus     float64 // added when both lines sit at the same offset of their span
	GramWeight        float64 // share of character-gram cosine within content similarity
	MinScore          float64 // pairs scoring below this are never matched
	ContextWindow     int     // neighbors on each side merged into a context profile
	Candidates        int     // simhash shortlist size in pruned mode
	MaxAssignmentSize int     // largest max(n, m) solved with the exact assignment
	Workers           int     // replace spans solved concurrently
}

// DefaultOptions returns the tuning the tool ships with.
func DefaultOptions() Options {
	return Options{
		ContentWeight:     0.7,
		ContextWeight:     0.3,
		PositionBonus:     0.2,
		GramWeight:        0.5,
		MinScore:          0.1,
		ContextWindow:     4,
		Candidates:        15,
		MaxAssignmentSize: 256,
		Workers:           4,
	}
}

// Validate reports the first field that holds an unusable value.
func (o Options) Validate() error {
	switch {
	case o.ContentWeight < 0 || o.ContextWeight < 0 || o.PositionBonus < 0:
		return fmt.Errorf("weights must be non-negative")
	case o.GramWeight < 0 || o.GramWeight > 1:
		return fmt.Errorf("gram weight must be within [0, 1], got %v", o.GramWeight)
	case o.ContextWindow < 0:
		return fmt.Errorf("context window must be non-negative, got %d", o.ContextWindow)
	case o.Candidates < 1:
		return fmt.Errorf("candidates must be at least 1, got %d", o.Candidates)
	case o.MaxAssignmentSize < 1:
		return fmt.Errorf("max assignment size must be at least 1, got %d", o.MaxAssignmentSize)
	case o.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", o.Workers)
	}
	return nil
}

// MapLines maps oldLines onto newLines. The returned slice lists every old line
// in ascending order (matched or deleted), followed by the unmatched new lines
// in ascending order. An error is returned only for invalid Options or an
// internal invariant violation; in that case no mapping is returned.
func MapLines(oldLines, newLines []string, opts Options) ([]LineMapping, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	oldSide := analyze(oldLines)
	newSide := analyze(newLines)

	spans, err := Align(oldSide.norms(), newSide.norms())
	if err != nil {
		return nil, err
	}

	var anchors []LineMapping
	var replaces []Span
	for _, sp := range spans {
		switch sp.Kind {
		case SpanEqual:
			for k := 0; k < sp.OldLen(); k++ {
				anchors = append(anchors, LineMapping{Old: sp.OldStart + k + 1, New: sp.NewStart + k + 1, Origin: OriginAnchor})
			}
		case SpanReplace:
			replaces = append(replaces, sp)
		case SpanDelete, SpanInsert:
			// Left for the assembler.
		default:
			return nil, invariantf("unexpected span kind %v", sp.Kind)
		}
	}

	for _, sp := range replaces {
		oldSide.prepareContext(sp.OldStart, sp.OldEnd, opts.ContextWindow)
		newSide.prepareContext(sp.NewStart, sp.NewEnd, opts.ContextWindow)
	}
	sc := &scorer{old: oldSide, new: newSide, opts: opts}

	solved := make([][]LineMapping, len(replaces))
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for k, sp := range replaces {
		k, sp := k, sp
		g.Go(func() error {
			if max(sp.OldLen(), sp.NewLen()) <= opts.MaxAssignmentSize {
				solved[k] = sc.solveBounded(sp)
			} else {
				solved[k] = sc.solvePruned(sp)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := anchors
	for _, part := range solved {
		matches = append(matches, part...)
	}
	return assemble(len(oldLines), len(newLines), matches)
}
