package graph

import (
	"fmt"

	"dsu_tool/pkg/errorutil"

	"github.com/mohae/deepcopy"
	"golang.org/x/exp/constraints"
)

// Weight 是边权可以使用的类型（需要能求和，所以不包含字符串）
type Weight interface {
	constraints.Integer | constraints.Float
}

// Edge 是一条无向边，U V 是稠密编号 [0, n)
type Edge[W Weight] struct {
	U      int `json:"u"`
	V      int `json:"v"`
	Weight W   `json:"weight"`
}

func (e Edge[W]) String() string {
	return fmt.Sprintf("%d-%d(%v)", e.U, e.V, e.Weight)
}

// Graph 把调用方的顶点名字映射到 [0, n)，并记录边列表
// 顶点编号按首次出现的顺序分配
type Graph struct {
	Vertices []string        // 编号 -> 名字
	Links    []Edge[float64] // 按输入顺序

	index map[string]int // 名字 -> 编号
}

func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddVertex 添加顶点（已存在则直接返回编号）
func (g *Graph) AddVertex(name string) int {
	if id, ok := g.index[name]; ok {
		return id
	}
	id := len(g.Vertices)
	g.Vertices = append(g.Vertices, name)
	g.index[name] = id
	return id
}

// AddEdge 添加一条边，端点不存在时自动创建
func (g *Graph) AddEdge(from, to string, weight float64) {
	u := g.AddVertex(from)
	v := g.AddVertex(to)
	g.Links = append(g.Links, Edge[float64]{U: u, V: v, Weight: weight})
}

// Index 返回名字对应的编号
func (g *Graph) Index(name string) (int, error) {
	id, ok := g.index[name]
	if !ok {
		return 0, fmt.Errorf("顶点 %q 不存在: %w", name, errorutil.ErrInvalidData)
	}
	return id, nil
}

// Name 返回编号对应的名字
func (g *Graph) Name(id int) (string, error) {
	if err := errorutil.CheckIndex(id, len(g.Vertices)); err != nil {
		return "", err
	}
	return g.Vertices[id], nil
}

func (g *Graph) Len() int {
	return len(g.Vertices)
}

// Clone 深拷贝，修改副本不影响原图
func (g *Graph) Clone() *Graph {
	c := deepcopy.Copy(g).(*Graph)
	// deepcopy 不处理未导出字段，索引重建
	c.index = make(map[string]int, len(c.Vertices))
	for i, name := range c.Vertices {
		c.index[name] = i
	}
	return c
}
