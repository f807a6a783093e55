package unionfind

import (
	"fmt"

	"dsu_tool/pkg/errorutil"
)

// Bounds 是一个集合内元素编号的最小值和最大值
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// UnionFind 是并查集结构，支持路径压缩和按大小合并，
// 并且在每个集合的根节点上维护 (min, max) 聚合信息
//
// 查询操作也会做路径压缩(会修改内部状态)，多个 goroutine 共享时
// 所有方法都需要外部加同一把互斥锁
type UnionFind struct {
	repr   []int
	size   []int    // 只有根节点有意义，被合并掉的根置 0
	bounds []Bounds // 只有根节点有意义
}

// New 初始化并查集，元素范围为 [0, n)，每个元素自成一个集合
func New(n int) (*UnionFind, error) {
	if n < 0 {
		return nil, fmt.Errorf("unionfind: element count %d: %w", n, errorutil.ErrInvalidArgument)
	}
	uf := &UnionFind{
		repr:   make([]int, n),
		size:   make([]int, n),
		bounds: make([]Bounds, n),
	}
	for i := range uf.repr {
		uf.repr[i] = i
		uf.size[i] = 1
		uf.bounds[i] = Bounds{Min: i, Max: i} // 自己就是最小值和最大值
	}
	return uf, nil
}

// Len 返回元素总数
func (uf *UnionFind) Len() int {
	return len(uf.repr)
}

// Find 查找元素所在集合的根节点（带路径压缩）
func (uf *UnionFind) Find(a int) (int, error) {
	if err := errorutil.CheckIndex(a, len(uf.repr)); err != nil {
		return 0, err
	}
	return uf.find(a), nil
}

// find 两遍迭代：先找到根，再把路径上每个节点直接指向根
// 调用前必须已经校验过下标
func (uf *UnionFind) find(a int) int {
	root := a
	for uf.repr[root] != root {
		root = uf.repr[root]
	}
	for a != root {
		a, uf.repr[a] = uf.repr[a], root
	}
	return root
}

// Union 合并两个集合（按大小优化），返回是否真的发生了合并
// 大小相同时保留 x 所在集合的根
func (uf *UnionFind) Union(x, y int) (bool, error) {
	if err := uf.check(x, y); err != nil {
		return false, err
	}

	gravity, pebble := uf.find(x), uf.find(y)
	if gravity == pebble {
		return false, nil // 已经在同一个集合
	}

	// 小集合挂到大集合下面
	if uf.size[pebble] > uf.size[gravity] {
		gravity, pebble = pebble, gravity
	}

	uf.repr[pebble] = gravity
	uf.size[gravity] += uf.size[pebble]
	uf.size[pebble] = 0

	g, p := &uf.bounds[gravity], uf.bounds[pebble]
	g.Min = min(g.Min, p.Min)
	g.Max = max(g.Max, p.Max)
	return true, nil
}

// Size 返回某个元素所在集合的大小
func (uf *UnionFind) Size(a int) (int, error) {
	root, err := uf.Find(a)
	if err != nil {
		return 0, err
	}
	return uf.size[root], nil
}

// Same 判断两个元素是否在同一个集合
func (uf *UnionFind) Same(u, v int) (bool, error) {
	if err := uf.check(u, v); err != nil {
		return false, err
	}
	return uf.find(u) == uf.find(v), nil
}

// Bounds 返回某个元素所在集合的 (min, max)
func (uf *UnionFind) Bounds(a int) (Bounds, error) {
	root, err := uf.Find(a)
	if err != nil {
		return Bounds{}, err
	}
	return uf.bounds[root], nil
}

// CountComponents 统计 size 非零的下标个数，就是集合个数
func (uf *UnionFind) CountComponents() int {
	count := 0
	for _, s := range uf.size {
		if s > 0 {
			count++
		}
	}
	return count
}

// Roots 按升序返回当前所有集合的根，不做路径压缩
func (uf *UnionFind) Roots() []int {
	roots := make([]int, 0, uf.CountComponents())
	for i, s := range uf.size {
		if s > 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

func (uf *UnionFind) check(ids ...int) error {
	for _, id := range ids {
		if err := errorutil.CheckIndex(id, len(uf.repr)); err != nil {
			return err
		}
	}
	return nil
}
