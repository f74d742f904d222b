package linemap

// line is everything the matcher derives from one input line.
type line struct {
	norm    string
	tokens  Profile
	grams   Profile
	context Profile
	hash    uint64
	ready   bool // context has been computed
}

// side holds the analyzed lines of one revision.
type side struct {
	lines    []line
	profiles []Profile // tokens of each line, indexed like lines
}

func analyze(raw []string) *side {
	s := &side{lines: make([]line, len(raw)), profiles: make([]Profile, len(raw))}
	for i, text := range raw {
		norm := Normalize(text)
		toks := Tokenize(norm)
		s.lines[i] = line{
			norm:   norm,
			tokens: NewProfile(toks),
			grams:  GramProfile(toks),
			hash:   simhashTokens(toks),
		}
		s.profiles[i] = s.lines[i].tokens
	}
	return s
}

func (s *side) norms() []string {
	out := make([]string, len(s.lines))
	for i := range s.lines {
		out[i] = s.lines[i].norm
	}
	return out
}

// prepareContext computes context profiles for lines [lo, hi). It must run
// before any concurrent scoring reads them.
func (s *side) prepareContext(lo, hi, window int) {
	for i := lo; i < hi; i++ {
		if s.lines[i].ready {
			continue
		}
		s.lines[i].context = contextProfile(s.profiles, i, window)
		s.lines[i].ready = true
	}
}
