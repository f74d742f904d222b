package linemap

// assemble merges anchor and solver matches for files of n old and m new lines
// and fills in the unmatched lines. Entries come out ordered by old line, with
// pure insertions last ordered by new line.
func assemble(n, m int, matches []LineMapping) ([]LineMapping, error) {
	oldTo := make([]int, n+1)
	newTo := make([]int, m+1)
	origin := make([]Origin, n+1)
	for _, mt := range matches {
		if mt.Old < 1 || mt.Old > n || mt.New < 1 || mt.New > m {
			return nil, invariantf("match %v out of range for %d old and %d new lines", mt, n, m)
		}
		if oldTo[mt.Old] != 0 {
			return nil, invariantf("old line %d matched to both %d and %d", mt.Old, oldTo[mt.Old], mt.New)
		}
		if newTo[mt.New] != 0 {
			return nil, invariantf("new line %d matched to both %d and %d", mt.New, newTo[mt.New], mt.Old)
		}
		oldTo[mt.Old] = mt.New
		newTo[mt.New] = mt.Old
		origin[mt.Old] = mt.Origin
	}

	out := make([]LineMapping, 0, n+m-len(matches))
	for i := 1; i <= n; i++ {
		if oldTo[i] == 0 {
			out = append(out, LineMapping{Old: i})
			continue
		}
		out = append(out, LineMapping{Old: i, New: oldTo[i], Origin: origin[i]})
	}
	for j := 1; j <= m; j++ {
		if newTo[j] == 0 {
			out = append(out, LineMapping{New: j})
		}
	}

	if err := Verify(out, n, m); err != nil {
		return nil, err
	}
	return out, nil
}

// Verify checks that mappings cover old lines 1..n and new lines 1..m exactly
// once each and that no entry has both sides absent.
func Verify(mappings []LineMapping, n, m int) error {
	seenOld := make([]bool, n+1)
	seenNew := make([]bool, m+1)
	for _, mt := range mappings {
		if !mt.HasOld() && !mt.HasNew() {
			return invariantf("entry with neither an old nor a new line")
		}
		if mt.HasOld() {
			if mt.Old > n {
				return invariantf("old line %d out of range (%d lines)", mt.Old, n)
			}
			if seenOld[mt.Old] {
				return invariantf("old line %d appears more than once", mt.Old)
			}
			seenOld[mt.Old] = true
		}
		if mt.HasNew() {
			if mt.New > m {
				return invariantf("new line %d out of range (%d lines)", mt.New, m)
			}
			if seenNew[mt.New] {
				return invariantf("new line %d appears more than once", mt.New)
			}
			seenNew[mt.New] = true
		}
	}
	for i := 1; i <= n; i++ {
		if !seenOld[i] {
			return invariantf("old line %d missing", i)
		}
	}
	for j := 1; j <= m; j++ {
		if !seenNew[j] {
			return invariantf("new line %d missing", j)
		}
	}
	return nil
}

// Stats counts mapping entries by outcome.
type Stats struct {
	Anchored int
	Matched  int
	Deleted  int
	Inserted int
}

// Summarize tallies mappings by origin and side.
func Summarize(mappings []LineMapping) Stats {
	var st Stats
	for _, mt := range mappings {
		switch {
		case mt.HasOld() && mt.HasNew() && mt.Origin == OriginAnchor:
			st.Anchored++
		case mt.HasOld() && mt.HasNew():
			st.Matched++
		case mt.HasOld():
			st.Deleted++
		default:
			st.Inserted++
		}
	}
	return st
}
