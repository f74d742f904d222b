package linemap

import "sort"

type proposal struct {
	old, new int // 0-based
	score    float64
}

// solvePruned matches an oversized span greedily. Each old line proposes only
// its Candidates nearest new lines by simhash distance; proposals are then
// accepted best-first, skipping lines that are already taken.
func (s *scorer) solvePruned(sp Span) []LineMapping {
	var props []proposal
	for i := sp.OldStart; i < sp.OldEnd; i++ {
		for _, j := range s.shortlist(i, sp) {
			sc, ok := s.score(i, j, i-sp.OldStart == j-sp.NewStart)
			if ok {
				props = append(props, proposal{old: i, new: j, score: sc})
			}
		}
	}
	sort.Slice(props, func(a, b int) bool {
		pa, pb := props[a], props[b]
		if pa.score != pb.score {
			return pa.score > pb.score
		}
		if pa.old != pb.old {
			return pa.old < pb.old
		}
		return pa.new < pb.new
	})

	usedOld := make(map[int]bool)
	usedNew := make(map[int]bool)
	var out []LineMapping
	for _, p := range props {
		if usedOld[p.old] || usedNew[p.new] {
			continue
		}
		usedOld[p.old] = true
		usedNew[p.new] = true
		out = append(out, LineMapping{Old: p.old + 1, New: p.new + 1, Origin: OriginSolver})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Old < out[b].Old })
	return out
}

type candidate struct {
	new  int
	dist int
}

// shortlist returns up to Candidates new lines of sp closest to old line i by
// Hamming distance, nearest first, ties by new index.
func (s *scorer) shortlist(i int, sp Span) []int {
	limit := min(s.opts.Candidates, sp.NewLen())
	if limit < 1 {
		return nil
	}
	h := s.old.lines[i].hash
	top := make([]candidate, 0, limit+1)
	for j := sp.NewStart; j < sp.NewEnd; j++ {
		d := Hamming(h, s.new.lines[j].hash)
		if len(top) == limit && d >= top[limit-1].dist {
			continue
		}
		pos := sort.Search(len(top), func(k int) bool { return top[k].dist > d })
		top = append(top, candidate{})
		copy(top[pos+1:], top[pos:])
		top[pos] = candidate{new: j, dist: d}
		if len(top) > limit {
			top = top[:limit]
		}
	}
	out := make([]int, len(top))
	for k, c := range top {
		out[k] = c.new
	}
	return out
}
