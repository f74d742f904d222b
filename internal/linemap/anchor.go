package linemap

import "github.com/pmezard/go-difflib/difflib"

// SpanKind classifies an alignment region.
type SpanKind int

const (
	SpanEqual SpanKind = iota
	SpanReplace
	SpanDelete
	SpanInsert
)

func (k SpanKind) String() string {
	switch k {
	case SpanEqual:
		return "equal"
	case SpanReplace:
		return "replace"
	case SpanDelete:
		return "delete"
	case SpanInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Span is a contiguous alignment region. Ranges are 0-based and half-open.
type Span struct {
	Kind     SpanKind
	OldStart int
	OldEnd   int
	NewStart int
	NewEnd   int
}

// OldLen returns the number of old lines in the span.
func (s Span) OldLen() int { return s.OldEnd - s.OldStart }

// NewLen returns the number of new lines in the span.
func (s Span) NewLen() int { return s.NewEnd - s.NewStart }

// Align partitions two sequences of normalized lines into spans using
// difflib's matching-block alignment with the popularity heuristic disabled.
func Align(oldNorm, newNorm []string) ([]Span, error) {
	m := difflib.NewMatcherWithJunk(oldNorm, newNorm, false, nil)
	ops := m.GetOpCodes()
	spans := make([]Span, 0, len(ops))
	for _, op := range ops {
		sp := Span{OldStart: op.I1, OldEnd: op.I2, NewStart: op.J1, NewEnd: op.J2}
		switch op.Tag {
		case 'e':
			sp.Kind = SpanEqual
		case 'r':
			sp.Kind = SpanReplace
		case 'd':
			sp.Kind = SpanDelete
		case 'i':
			sp.Kind = SpanInsert
		default:
			return nil, invariantf("unexpected alignment opcode %q", op.Tag)
		}
		spans = append(spans, sp)
	}
	return spans, nil
}
