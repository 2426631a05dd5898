package scene

// unionFind is a standard disjoint-set structure over edge indices,
// grounded on the teacher's region.go sweep-and-merge span-id assignment
// (union small regions into larger ones as shared connectivity is found).
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

// Component is a maximal connected set of edges linked through shared
// nodes, plus isolated shapes as their own single-edge components
// (spec.md section 3).
type Component struct {
	Key        int // arbitrary stable id, the component's index in Scene.Components
	SetIndices []int
	NodeIdxs   []int
	EdgeIdxs   []int
	Regions    []Region
	Hull       []int // edge indices forming the outer (CW) face
	ChildKeys  []int // components whose bounding box nests inside this one
}

// groupComponents runs union-find over edges that share a node, then
// collects the resulting groups into Components (spec.md section 4.4 step
// 4).
func groupComponents(edges []Edge) []Component {
	uf := newUnionFind(len(edges))
	byNode := make(map[int][]int)
	for i, e := range edges {
		if e.Node0 >= 0 {
			byNode[e.Node0] = append(byNode[e.Node0], i)
		}
		if e.Node1 >= 0 {
			byNode[e.Node1] = append(byNode[e.Node1], i)
		}
	}
	for _, ids := range byNode {
		for i := 1; i < len(ids); i++ {
			uf.union(ids[0], ids[i])
		}
	}

	// Deterministic grouping: scan edges in index order, assigning each
	// newly-seen root the next component slot. Go map iteration order is
	// never relied upon for the result (spec.md section 4.7 determinism).
	rootToComp := make(map[int]int)
	var order []int
	for i := range edges {
		r := uf.find(i)
		if _, ok := rootToComp[r]; !ok {
			rootToComp[r] = len(order)
			order = append(order, r)
		}
	}

	comps := make([]Component, len(order))
	for i := range comps {
		comps[i].Key = i
	}
	seenSet := make([]map[int]bool, len(order))
	seenNode := make([]map[int]bool, len(order))
	for i := range seenSet {
		seenSet[i] = map[int]bool{}
		seenNode[i] = map[int]bool{}
	}
	for i, e := range edges {
		ci := rootToComp[uf.find(i)]
		edges[i].ComponentID = ci
		comps[ci].EdgeIdxs = append(comps[ci].EdgeIdxs, i)
		if !seenSet[ci][e.SetIdx] {
			seenSet[ci][e.SetIdx] = true
			comps[ci].SetIndices = append(comps[ci].SetIndices, e.SetIdx)
		}
		for _, n := range []int{e.Node0, e.Node1} {
			if n >= 0 && !seenNode[ci][n] {
				seenNode[ci][n] = true
				comps[ci].NodeIdxs = append(comps[ci].NodeIdxs, n)
			}
		}
	}
	return comps
}
