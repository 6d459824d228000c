package analytics

// unionFind is a disjoint-set structure over array indices with path
// compression and union by rank. An explicit parent/rank table keeps the
// structure flat and trivially inspectable in tests.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

// find returns the root of i, compressing the path along the way.
func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

// union merges the sets containing i and j.
func (u *unionFind) union(i, j int) {
	ri, rj := u.find(i), u.find(j)
	if ri == rj {
		return
	}
	switch {
	case u.rank[ri] < u.rank[rj]:
		u.parent[ri] = rj
	case u.rank[ri] > u.rank[rj]:
		u.parent[rj] = ri
	default:
		u.parent[rj] = ri
		u.rank[ri]++
	}
}

// connected reports whether i and j are in the same set.
func (u *unionFind) connected(i, j int) bool {
	return u.find(i) == u.find(j)
}
