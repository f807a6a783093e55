package graph

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dsu_tool/pkg/errorutil"

	"github.com/awalterschulze/gographviz"
	"github.com/tidwall/gjson"
)

// 输入格式
const (
	KindText = "text"
	KindJSON = "json"
	KindDOT  = "dot"
)

// 没有写权重的边默认权重
const defaultWeight = 1.0

// 文本格式单行最大长度
const maxLineSize = 16 * 1024 * 1024

// Load 读取文件（"-" 表示标准输入）并按格式解析
// kind 为空时按扩展名判断，判断不出来按 text 处理
func Load(path, kind string) (*Graph, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errorutil.NewExitErrorWithMessage(errorutil.CodeMissingInput, "读取输入失败", err)
	}
	if kind == "" {
		kind = KindFromPath(path)
	}
	return Parse(data, kind)
}

// KindFromPath 根据扩展名猜测输入格式
func KindFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return KindJSON
	case ".dot", ".gv":
		return KindDOT
	default:
		return KindText
	}
}

func Parse(data []byte, kind string) (*Graph, error) {
	switch kind {
	case KindText:
		return ParseText(bytes.NewReader(data))
	case KindJSON:
		return ParseJSON(data)
	case KindDOT:
		return ParseDOT(data)
	default:
		return nil, fmt.Errorf("不支持的输入格式 %q: %w", kind, errorutil.ErrInvalidArgument)
	}
}

// ParseText 解析边列表，每行 "u v [weight]"，只有一个名字的行表示孤立顶点
// # 开头的是注释
func ParseText(r io.Reader) (*Graph, error) {
	g := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 0:
			continue
		case 1:
			g.AddVertex(fields[0])
		case 2, 3:
			w := defaultWeight
			if len(fields) == 3 {
				var ok bool
				if w, ok = parseWeight(fields[2]); !ok {
					return nil, fmt.Errorf("第 %d 行权重 %q 不是有限数: %w", lineNo, fields[2], errorutil.ErrInvalidData)
				}
			}
			g.AddEdge(fields[0], fields[1], w)
		default:
			return nil, fmt.Errorf("第 %d 行字段过多 %q: %w", lineNo, line, errorutil.ErrInvalidData)
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("第 %d 行超过 %d 字节: %w", lineNo+1, maxLineSize, errorutil.ErrInvalidData)
		}
		return nil, errorutil.NewExitErrorWithMessage(errorutil.CodeMissingInput, "读取输入失败", err)
	}
	return g, nil
}

// ParseJSON 解析
//
//	{"vertices": ["a", "b"], "edges": [{"from": "a", "to": "b", "weight": 2}, ["b", "c"]]}
//
// 边既可以是对象也可以是 [from, to, weight] 数组，vertices 可省略
func ParseJSON(data []byte) (*Graph, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("输入内容不是有效的 JSON: %w", errorutil.ErrInvalidData)
	}
	root := gjson.ParseBytes(data)
	g := New()

	for _, v := range root.Get("vertices").Array() {
		g.AddVertex(v.String())
	}

	edges := root.Get("edges")
	if edges.Exists() && !edges.IsArray() {
		return nil, fmt.Errorf("edges 必须是数组: %w", errorutil.ErrInvalidData)
	}
	for i, e := range edges.Array() {
		var from, to, weight gjson.Result
		switch {
		case e.IsArray():
			parts := e.Array()
			if len(parts) < 2 || len(parts) > 3 {
				return nil, fmt.Errorf("第 %d 条边需要 2 或 3 个元素: %w", i, errorutil.ErrInvalidData)
			}
			from, to = parts[0], parts[1]
			if len(parts) == 3 {
				weight = parts[2]
			}
		case e.IsObject():
			from, to, weight = e.Get("from"), e.Get("to"), e.Get("weight")
		default:
			return nil, fmt.Errorf("第 %d 条边格式错误 %s: %w", i, e.Raw, errorutil.ErrInvalidData)
		}

		if !from.Exists() || !to.Exists() {
			return nil, fmt.Errorf("第 %d 条边缺少端点: %w", i, errorutil.ErrInvalidData)
		}
		w := defaultWeight
		if weight.Exists() {
			if weight.Type != gjson.Number {
				return nil, fmt.Errorf("第 %d 条边权重 %s 不是数字: %w", i, weight.Raw, errorutil.ErrInvalidData)
			}
			// 1e999 这种会溢出成 Inf
			if w = weight.Float(); !finite(w) {
				return nil, fmt.Errorf("第 %d 条边权重 %s 不是有限数: %w", i, weight.Raw, errorutil.ErrInvalidData)
			}
		}
		g.AddEdge(from.String(), to.String(), w)
	}
	return g, nil
}

// ParseDOT 解析 graphviz DOT，有向边按无向处理，权重取 weight 属性
func ParseDOT(data []byte) (*Graph, error) {
	ast, err := gographviz.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("无法解析 DOT: %v: %w", err, errorutil.ErrInvalidData)
	}
	dg := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, dg); err != nil {
		return nil, fmt.Errorf("无法分析 DOT 图: %v: %w", err, errorutil.ErrInvalidData)
	}

	g := New()
	for _, node := range dg.Nodes.Nodes {
		g.AddVertex(unquote(node.Name))
	}
	for i, edge := range dg.Edges.Edges {
		w := defaultWeight
		if raw, ok := edge.Attrs[gographviz.Attr("weight")]; ok {
			var ok bool
			if w, ok = parseWeight(unquote(raw)); !ok {
				return nil, fmt.Errorf("第 %d 条边权重 %q 不是有限数: %w", i, raw, errorutil.ErrInvalidData)
			}
		}
		g.AddEdge(unquote(edge.Src), unquote(edge.Dst), w)
	}
	return g, nil
}

// parseWeight 只接受有限的数字，ParseFloat 会放过 nan 和 inf
func parseWeight(s string) (float64, bool) {
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return w, finite(w)
}

func finite(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0)
}

// DOT 里带引号的 ID 保留了引号
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}
