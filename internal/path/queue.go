package path

import "dungeon-core/internal/geom"

type node struct {
	pos    geom.Coord
	parent *node
	g, h   float64
	f      float64
	closed bool
	index  int // Индекс в куче, -1 если узла в ней нет
}

// nodeQueue реализует heap.Interface: min-heap по f, при равенстве - по h.
type nodeQueue []*node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].f == q[j].f {
		return q[i].h < q[j].h
	}
	return q[i].f < q[j].f
}

func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *nodeQueue) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *nodeQueue) Pop() interface{} {
	old := *q
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*q = old[:last]
	return n
}
