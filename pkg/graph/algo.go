package graph

import (
	"fmt"

	"dsu_tool/pkg/errorutil"
	"dsu_tool/pkg/logutil"
	"dsu_tool/pkg/unionfind"
)

// Components 把所有边合并进一个 n 个元素的并查集，返回合并后的结果
func Components[W Weight](n int, edges []Edge[W]) (*unionfind.UnionFind, error) {
	uf, err := unionfind.New(n)
	if err != nil {
		return nil, err
	}
	for i, e := range edges {
		if _, err := uf.Union(e.U, e.V); err != nil {
			return nil, fmt.Errorf("第 %d 条边 %v: %w", i, e, err)
		}
	}
	logutil.Debug("%d 个顶点 %d 条边 -> %d 个连通分量", n, len(edges), uf.CountComponents())
	return uf, nil
}

// FindCycle 按输入顺序加边，返回第一条让无向图成环的边
// 两个端点在加这条边之前已经连通就说明成环，自环也算
func FindCycle[W Weight](n int, edges []Edge[W]) (Edge[W], bool, error) {
	uf, err := unionfind.New(n)
	if err != nil {
		return Edge[W]{}, false, err
	}
	for i, e := range edges {
		merged, err := uf.Union(e.U, e.V)
		if err != nil {
			return Edge[W]{}, false, fmt.Errorf("第 %d 条边 %v: %w", i, e, err)
		}
		if !merged {
			logutil.Debug("第 %d 条边 %v 闭合了一个环", i, e)
			return e, true, nil
		}
	}
	return Edge[W]{}, false, nil
}

// MST 是最小生成森林的结果
type MST[W Weight] struct {
	Edges      []Edge[W] // 按加入顺序（权重升序）
	Total      W
	Components int // 生成森林里树的棵数，连通图为 1
}

// Kruskal 计算最小生成森林：边按权重从小到大出队，
// 两端不连通才保留
func Kruskal[W Weight](n int, edges []Edge[W]) (MST[W], error) {
	var res MST[W]
	uf, err := unionfind.New(n)
	if err != nil {
		return res, err
	}

	// 先统一校验，避免出队到一半才报错
	for i, e := range edges {
		if _, err := uf.Same(e.U, e.V); err != nil {
			return res, fmt.Errorf("第 %d 条边 %v: %w", i, e, err)
		}
		// NaN 和谁比都是 false，堆序会乱
		if e.Weight != e.Weight {
			return res, fmt.Errorf("第 %d 条边 %v 权重是 NaN: %w", i, e, errorutil.ErrInvalidData)
		}
	}

	q := newEdgeQueue(edges)
	remaining := n
	for q.Len() > 0 && remaining > 1 {
		e := q.PopEdge()
		merged, _ := uf.Union(e.U, e.V)
		if !merged {
			logutil.Debug("跳过边 %v", e)
			continue
		}
		logutil.Debug("保留边 %v", e)
		remaining--
		res.Edges = append(res.Edges, e)
		res.Total += e.Weight
	}
	res.Components = remaining
	return res, nil
}

// SpanningForest 在图的副本上只保留最小生成森林的边，原图不动
func SpanningForest(g *Graph) (*Graph, MST[float64], error) {
	mst, err := Kruskal(g.Len(), g.Links)
	if err != nil {
		return nil, mst, err
	}
	forest := g.Clone()
	forest.Links = append([]Edge[float64](nil), mst.Edges...)
	return forest, mst, nil
}
