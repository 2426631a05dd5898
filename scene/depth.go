package scene

import (
	"strconv"

	"github.com/runsascoded/shapes/shape"
)

// bbox is an axis-aligned bounding box, used to approximate nesting
// between components (spec.md section 3: "a list of child component keys
// for components whose bounding box is strictly contained in this
// component").
type bbox struct {
	minX, minY, maxX, maxY float64
	empty                  bool
}

func (b *bbox) extend(x, y float64) {
	if b.empty {
		*b = bbox{minX: x, minY: y, maxX: x, maxY: y}
		return
	}
	if x < b.minX {
		b.minX = x
	}
	if x > b.maxX {
		b.maxX = x
	}
	if y < b.minY {
		b.minY = y
	}
	if y > b.maxY {
		b.maxY = y
	}
}

func (a bbox) strictlyContains(b bbox) bool {
	if a.empty || b.empty {
		return false
	}
	return a.minX < b.minX && a.minY < b.minY && a.maxX > b.maxX && a.maxY > b.maxY
}

// assignDepth records, for every component, the keys of every other
// component whose bounding box it strictly contains (spec.md section 4.4
// step 6).
func assignDepth(shapes []shape.Shape, nodes []Node, edges []Edge, comps []Component) {
	byIdx := make(map[int]shape.Shape, len(shapes))
	for _, s := range shapes {
		byIdx[s.SetIndex()] = s
	}

	boxes := make([]bbox, len(comps))
	for i, c := range comps {
		b := bbox{empty: true}
		for _, ni := range c.NodeIdxs {
			b.extend(nodes[ni].P.X.V, nodes[ni].P.Y.V)
		}
		if b.empty {
			// Isolated-shape component: fall back to a coarse sample of
			// the shape's own boundary.
			for _, ei := range c.EdgeIdxs {
				s := byIdx[edges[ei].SetIdx]
				for _, p := range shape.Sample(s, shape.NGonSamples) {
					b.extend(p.X.V, p.Y.V)
				}
			}
		}
		boxes[i] = b
	}

	for i := range comps {
		for j := range comps {
			if i == j {
				continue
			}
			if boxes[i].strictlyContains(boxes[j]) {
				comps[i].ChildKeys = append(comps[i].ChildKeys, comps[j].Key)

				// Record the nested component as a "hole" of whichever
				// of this component's own regions its bounding-box
				// center falls inside (spec.md section 3: regions may
				// contain whole other components as child keys).
				cx := (boxes[j].minX + boxes[j].maxX) / 2
				cy := (boxes[j].minY + boxes[j].maxY) / 2
				childKey, _ := keyForPoint(byIdx, len(shapes), cx, cy)
				for ri := range comps[i].Regions {
					if comps[i].Regions[ri].Key == childKey {
						comps[i].Regions[ri].ChildKeys = append(comps[i].Regions[ri].ChildKeys, strconv.Itoa(comps[j].Key))
						break
					}
				}
			}
		}
	}
}
