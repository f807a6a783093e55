package report

import (
	"fmt"
	"strconv"

	"dsu_tool/pkg/errorutil"
	"dsu_tool/pkg/unionfind"

	"github.com/emirpasic/gods/maps/treemap"
)

// Group 是一个连通分量
type Group struct {
	Root    int              `json:"root"`
	Size    int              `json:"size"`
	Bounds  unionfind.Bounds `json:"bounds"`
	Members []string         `json:"members"`
}

// Partition 是并查集当前的划分，分量按 Bounds.Min 升序
type Partition struct {
	Elements int     `json:"elements"`
	Groups   []Group `json:"groups"`
}

// Build 把并查集整理成按分量分组的结果
// names 为 nil 时成员名就是编号本身
func Build(uf *unionfind.UnionFind, names []string) (Partition, error) {
	n := uf.Len()
	if names != nil && len(names) != n {
		return Partition{}, fmt.Errorf("名字个数 %d 和元素个数 %d 不一致: %w", len(names), n, errorutil.ErrInvalidArgument)
	}

	// 不同分量的 Min 一定不同，可以直接当 key
	byMin := treemap.NewWithIntComparator()
	for i := 0; i < n; i++ {
		b, err := uf.Bounds(i)
		if err != nil {
			return Partition{}, err
		}
		var g *Group
		if v, ok := byMin.Get(b.Min); ok {
			g = v.(*Group)
		} else {
			root, _ := uf.Find(i)
			size, _ := uf.Size(i)
			g = &Group{Root: root, Size: size, Bounds: b}
			byMin.Put(b.Min, g)
		}
		g.Members = append(g.Members, memberName(names, i))
	}

	p := Partition{Elements: n, Groups: make([]Group, 0, byMin.Size())}
	for _, v := range byMin.Values() {
		p.Groups = append(p.Groups, *v.(*Group))
	}
	return p, nil
}

func memberName(names []string, i int) string {
	if names == nil {
		return strconv.Itoa(i)
	}
	return names[i]
}
