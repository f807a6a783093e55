package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"dsu_tool/pkg/graph"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// 成员列太长时截断
const maxMembersWidth = 60

type JSONFormat string

const (
	JSONFormatOne JSONFormat = "one"
	JSONFormatMul JSONFormat = "mul"
)

// 为了让 VarP 接收自定义类型，实现 flag.Value 接口(String Set Type)即可
func (f *JSONFormat) String() string { return string(*f) }

func (f *JSONFormat) Set(val string) error {
	switch val {
	case string(JSONFormatMul), string(JSONFormatOne):
		*f = JSONFormat(val)
		return nil
	default:
		return fmt.Errorf("无效的 jsonformat 值: %s", val)
	}
}

func (f *JSONFormat) Type() string {
	return "jsonformat"
}

var prettyOptions = &pretty.Options{Width: 80, Indent: "    "}

func finish(doc []byte, format JSONFormat) []byte {
	if format == JSONFormatOne {
		return pretty.Ugly(doc)
	}
	return pretty.PrettyOptions(doc, prettyOptions)
}

// JSON 用 sjson 逐个字段拼出划分结果
func JSON(p Partition, format JSONFormat) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}

	set("elements", p.Elements)
	set("components", len(p.Groups))
	if err == nil {
		doc, err = sjson.SetRawBytes(doc, "groups", []byte(`[]`))
	}
	for i, g := range p.Groups {
		prefix := "groups." + strconv.Itoa(i)
		set(prefix+".root", g.Root)
		set(prefix+".size", g.Size)
		set(prefix+".min", g.Bounds.Min)
		set(prefix+".max", g.Bounds.Max)
		set(prefix+".members", g.Members)
	}
	if err != nil {
		return nil, fmt.Errorf("生成 JSON 失败: %w", err)
	}
	return finish(doc, format), nil
}

// Text 输出对齐的表格，最后一行是汇总
func Text(w io.Writer, p Partition) error {
	rows := [][]string{{"#", "size", "min", "max", "members"}}
	for i, g := range p.Groups {
		members := runewidth.Truncate(strings.Join(g.Members, " "), maxMembersWidth, "...")
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			humanize.Comma(int64(g.Size)),
			strconv.Itoa(g.Bounds.Min),
			strconv.Itoa(g.Bounds.Max),
			members,
		})
	}
	if err := writeTable(w, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "共 %s 个元素, %s 个连通分量\n",
		humanize.Comma(int64(p.Elements)), humanize.Comma(int64(len(p.Groups))))
	return err
}

// MSTJSON 输出最小生成森林，端点用顶点名字
func MSTJSON(mst graph.MST[float64], names []string, format JSONFormat) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}

	set("total", mst.Total)
	set("trees", mst.Components)
	if err == nil {
		doc, err = sjson.SetRawBytes(doc, "edges", []byte(`[]`))
	}
	for i, e := range mst.Edges {
		prefix := "edges." + strconv.Itoa(i)
		set(prefix+".from", memberName(names, e.U))
		set(prefix+".to", memberName(names, e.V))
		set(prefix+".weight", e.Weight)
	}
	if err != nil {
		return nil, fmt.Errorf("生成 JSON 失败: %w", err)
	}
	return finish(doc, format), nil
}

func MSTText(w io.Writer, mst graph.MST[float64], names []string) error {
	rows := [][]string{{"from", "to", "weight"}}
	for _, e := range mst.Edges {
		rows = append(rows, []string{
			memberName(names, e.U),
			memberName(names, e.V),
			strconv.FormatFloat(e.Weight, 'g', -1, 64),
		})
	}
	if err := writeTable(w, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "共 %s 条边, 总权重 %s, %s 棵树\n",
		humanize.Comma(int64(len(mst.Edges))),
		strconv.FormatFloat(mst.Total, 'g', -1, 64),
		humanize.Comma(int64(mst.Components)))
	return err
}

// writeTable 按显示宽度左对齐（中文按两个宽度算）
func writeTable(w io.Writer, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell) // 最后一列不补空格
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
