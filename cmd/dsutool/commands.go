package main

import (
	"fmt"
	"io"

	"dsu_tool/pkg/errorutil"
	"dsu_tool/pkg/graph"
	"dsu_tool/pkg/logutil"
	"dsu_tool/pkg/report"
	"dsu_tool/pkg/unionfind"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

// 输出格式
const (
	outputText = "txt"
	outputJSON = "json"
)

// 所有子命令共用的输入输出选项
type ioOptions struct {
	Input      string
	Kind       string
	Output     string
	JSONFormat report.JSONFormat
}

func (o *ioOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Input, "input", "i", "-", "输入文件，- 表示标准输入")
	cmd.Flags().StringVarP(&o.Kind, "kind", "k", "", "输入格式 text/json/dot，默认按扩展名判断")
	cmd.Flags().StringVarP(&o.Output, "output", "t", outputText, "输出格式 txt/json")
	o.JSONFormat = report.JSONFormatMul
	cmd.Flags().VarP(&o.JSONFormat, "jsonformat", "F", "输出的 JSON 的格式(mul|one)，代表多行或者一行")
}

func (o *ioOptions) load() (*graph.Graph, error) {
	switch o.Output {
	case outputText, outputJSON:
	default:
		return nil, errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidUsage,
			fmt.Sprintf("不支持的输出格式: %s", o.Output), nil)
	}
	g, err := graph.Load(o.Input, o.Kind)
	if err != nil {
		return nil, err
	}
	logutil.Info("读取 %s: %d 个顶点 %d 条边", o.Input, g.Len(), len(g.Links))
	return g, nil
}

func writeJSON(w io.Writer, data []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func componentsCmd() *cobra.Command {
	opts := &ioOptions{}
	cmd := &cobra.Command{
		Use:   "components",
		Short: "输出连通分量(大小、最小/最大编号、成员)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.load()
			if err != nil {
				return err
			}
			uf, err := graph.Components(g.Len(), g.Links)
			if err != nil {
				return err
			}
			p, err := report.Build(uf, g.Vertices)
			if err != nil {
				return err
			}
			if opts.Output == outputJSON {
				data, err := report.JSON(p, opts.JSONFormat)
				return writeJSON(cmd.OutOrStdout(), data, err)
			}
			return report.Text(cmd.OutOrStdout(), p)
		},
	}
	opts.bind(cmd)
	return cmd
}

func mstCmd() *cobra.Command {
	opts := &ioOptions{}
	cmd := &cobra.Command{
		Use:   "mst",
		Short: "Kruskal 最小生成森林",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.load()
			if err != nil {
				return err
			}
			forest, mst, err := graph.SpanningForest(g)
			if err != nil {
				return err
			}
			logutil.Info("生成森林保留 %d/%d 条边", len(forest.Links), len(g.Links))
			if opts.Output == outputJSON {
				data, err := report.MSTJSON(mst, forest.Vertices, opts.JSONFormat)
				return writeJSON(cmd.OutOrStdout(), data, err)
			}
			return report.MSTText(cmd.OutOrStdout(), mst, forest.Vertices)
		},
	}
	opts.bind(cmd)
	return cmd
}

func cycleCmd() *cobra.Command {
	opts := &ioOptions{}
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: fmt.Sprintf("检测无向环，找到时输出闭合环的第一条边并以 %d 退出", exitCodeCycleFound),
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.load()
			if err != nil {
				return err
			}
			e, found, err := graph.FindCycle(g.Len(), g.Links)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.Output == outputJSON {
				doc, _ := sjson.SetBytes([]byte(`{}`), "cycle", found)
				if found {
					doc, _ = sjson.SetBytes(doc, "from", g.Vertices[e.U])
					doc, _ = sjson.SetBytes(doc, "to", g.Vertices[e.V])
					doc, _ = sjson.SetBytes(doc, "weight", e.Weight)
				}
				fmt.Fprintln(out, string(doc))
			} else if found {
				fmt.Fprintf(out, "边 %s -- %s 闭合了一个环\n", g.Vertices[e.U], g.Vertices[e.V])
			} else {
				fmt.Fprintln(out, "无环")
			}

			if found {
				return &errorutil.ExitErrorWithCode{
					Code:        errorutil.CodeAssertionFailed,
					CmdExitCode: exitCodeCycleFound,
					Message:     "检测到环",
				}
			}
			return nil
		},
	}
	opts.bind(cmd)
	return cmd
}

func queryCmd() *cobra.Command {
	opts := &ioOptions{}
	cmd := &cobra.Command{
		Use:   "query (same <a> <b> | size <a> | find <a> | bounds <a>)",
		Short: "对合并后的并查集做一次查询，参数是顶点名字",
		Args:  usageArgs(cobra.RangeArgs(2, 3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var want int
			switch args[0] {
			case "same":
				want = 3
			case "size", "find", "bounds":
				want = 2
			default:
				return errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidUsage,
					fmt.Sprintf("未知查询: %q，请使用 same / size / find / bounds", args[0]), nil)
			}
			if len(args) != want {
				return errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidUsage,
					fmt.Sprintf("%s 需要 %d 个顶点参数", args[0], want-1), nil)
			}

			g, err := opts.load()
			if err != nil {
				return err
			}
			ids := make([]int, 0, 2)
			for _, name := range args[1:] {
				id, err := g.Index(name)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			uf, err := graph.Components(g.Len(), g.Links)
			if err != nil {
				return err
			}
			v, err := runQuery(uf, g, args[0], ids)
			if err != nil {
				return err
			}
			if opts.Output == outputJSON {
				doc, _ := sjson.SetBytes([]byte(`{}`), "query", args[0])
				doc, err = sjson.SetBytes(doc, "result", v.value)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(doc))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.text)
			return nil
		},
	}
	opts.bind(cmd)
	return cmd
}

// queryResult 同时保留文本输出和 JSON 里的值
type queryResult struct {
	text  string
	value any
}

func runQuery(uf *unionfind.UnionFind, g *graph.Graph, op string, ids []int) (queryResult, error) {
	switch op {
	case "same":
		ok, err := uf.Same(ids[0], ids[1])
		return queryResult{text: fmt.Sprint(ok), value: ok}, err
	case "size":
		s, err := uf.Size(ids[0])
		return queryResult{text: fmt.Sprint(s), value: s}, err
	case "find":
		r, err := uf.Find(ids[0])
		if err != nil {
			return queryResult{}, err
		}
		return queryResult{text: g.Vertices[r], value: g.Vertices[r]}, nil
	case "bounds":
		b, err := uf.Bounds(ids[0])
		if err != nil {
			return queryResult{}, err
		}
		return queryResult{
			text:  fmt.Sprintf("%d(%s) %d(%s)", b.Min, g.Vertices[b.Min], b.Max, g.Vertices[b.Max]),
			value: b,
		}, nil
	default:
		return queryResult{}, errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidUsage,
			fmt.Sprintf("未知查询: %q", op), nil)
	}
}

// usageArgs 把 cobra 的参数校验错误转成用法错误码
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
		}
		return nil
	}
}
