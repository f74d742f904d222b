package linemap

import "math"

// solveBounded matches the lines of a replace span with a maximum-weight
// assignment over the full score matrix. Only eligible assigned pairs are kept.
func (s *scorer) solveBounded(sp Span) []LineMapping {
	n, m := sp.OldLen(), sp.NewLen()
	k := max(n, m)

	weight := make([][]float64, k)
	eligible := make([][]bool, n)
	best := 0.0
	found := false
	for a := range weight {
		weight[a] = make([]float64, k)
		if a >= n {
			continue
		}
		eligible[a] = make([]bool, m)
		for b := 0; b < m; b++ {
			sc, ok := s.score(sp.OldStart+a, sp.NewStart+b, a == b)
			if !ok {
				continue
			}
			weight[a][b] = sc
			eligible[a][b] = true
			best = max(best, sc)
			found = true
		}
	}
	if !found {
		return nil
	}

	cost := make([][]float64, k)
	for a := range cost {
		cost[a] = make([]float64, k)
		for b := range cost[a] {
			cost[a][b] = best - weight[a][b]
		}
	}

	var out []LineMapping
	for a, b := range Hungarian(cost) {
		if a < n && b < m && eligible[a][b] {
			out = append(out, LineMapping{Old: sp.OldStart + a + 1, New: sp.NewStart + b + 1, Origin: OriginSolver})
		}
	}
	return out
}

// Hungarian solves the assignment problem for a square cost matrix and returns,
// for each row, the column assigned to it in a minimum-cost perfect matching.
// It runs in O(n³) using row and column potentials and involves no randomness,
// so equal inputs always produce equal assignments.
func Hungarian(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	inf := math.Inf(1)

	// Index 0 is a sentinel column; rows and columns are 1-based below.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	owner := make([]int, n+1) // owner[j] is the row assigned to column j
	way := make([]int, n+1)
	minv := make([]float64, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		owner[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}
		for {
			used[j0] = true
			i0 := owner[j0]
			delta := inf
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[owner[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if owner[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			owner[j0] = owner[j1]
			j0 = j1
		}
	}

	assign := make([]int, n)
	for j := 1; j <= n; j++ {
		assign[owner[j]-1] = j - 1
	}
	return assign
}
