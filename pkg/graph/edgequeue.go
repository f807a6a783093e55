package graph

import "container/heap"

// queuedEdge 带上输入顺序，权重相同时按输入顺序出队
type queuedEdge[W Weight] struct {
	edge Edge[W]
	seq  int
}

// edgeQueue 是按权重升序出队的小顶堆
type edgeQueue[W Weight] struct {
	data []queuedEdge[W]
}

func newEdgeQueue[W Weight](edges []Edge[W]) *edgeQueue[W] {
	q := &edgeQueue[W]{data: make([]queuedEdge[W], len(edges))}
	for i, e := range edges {
		q.data[i] = queuedEdge[W]{edge: e, seq: i}
	}
	heap.Init(q)
	return q
}

func (q edgeQueue[W]) Len() int { return len(q.data) }

func (q edgeQueue[W]) Less(i, j int) bool {
	a, b := q.data[i], q.data[j]
	if a.edge.Weight != b.edge.Weight {
		return a.edge.Weight < b.edge.Weight
	}
	return a.seq < b.seq
}

func (q edgeQueue[W]) Swap(i, j int) { q.data[i], q.data[j] = q.data[j], q.data[i] }

func (q *edgeQueue[W]) Push(x any) {
	q.data = append(q.data, x.(queuedEdge[W]))
}

func (q *edgeQueue[W]) Pop() any {
	n := len(q.data)
	x := q.data[n-1]
	q.data = q.data[:n-1]
	return x
}

// PopEdge 弹出当前权重最小的边
func (q *edgeQueue[W]) PopEdge() Edge[W] {
	return heap.Pop(q).(queuedEdge[W]).edge
}
