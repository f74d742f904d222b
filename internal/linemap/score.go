package linemap

// scorer rates candidate pairs between two analyzed sides. It only reads
// shared state, so one scorer serves concurrent span solvers.
type scorer struct {
	old  *side
	new  *side
	opts Options
}

// content blends token cosine with character-gram cosine.
func (s *scorer) content(i, j int) float64 {
	a, b := &s.old.lines[i], &s.new.lines[j]
	g := s.opts.GramWeight
	return (1-g)*Cosine(a.tokens, b.tokens) + g*Cosine(a.grams, b.grams)
}

// score returns the combined score of old line i and new line j (0-based) and
// whether the pair may be matched at all. aligned marks pairs at the same
// offset of their span. A pair with no content overlap is never eligible, so
// shared surroundings alone cannot pair two unrelated lines.
func (s *scorer) score(i, j int, aligned bool) (float64, bool) {
	content := s.content(i, j)
	if content <= 0 {
		return 0, false
	}
	total := s.opts.ContentWeight*content + s.opts.ContextWeight*Cosine(s.old.lines[i].context, s.new.lines[j].context)
	if aligned {
		total += s.opts.PositionBonus
	}
	return total, total >= s.opts.MinScore
}
