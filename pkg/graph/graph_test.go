package graph_test

import (
	"errors"
	"strings"
	"testing"

	"dsu_tool/pkg/errorutil"
	"dsu_tool/pkg/graph"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const textInput = `
# 两个三角形 + 一个孤立点
a b 1
b c 2
c a 3
x y 1.5
y z
z x 4
lonely
`

const jsonInput = `{
    "vertices": ["a", "b"],
    "edges": [
        {"from": "a", "to": "b", "weight": 1},
        ["b", "c", 2],
        {"from": "c", "to": "a", "weight": 3},
        ["x", "y", 1.5],
        ["y", "z"],
        {"from": "z", "to": "x", "weight": 4}
    ],
    "tail": "ignored"
}`

const dotInput = `graph G {
    a; b;
    a -- b [weight=1];
    b -- c [weight="2"];
    c -- a [weight=3];
    x -- y [weight=1.5];
    y -- z;
    z -- x [weight=4];
    lonely;
}`

func TestParseFormatsAgree(t *testing.T) {
	text, err := graph.ParseText(strings.NewReader(textInput))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	js, err := graph.ParseJSON([]byte(jsonInput))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	dot, err := graph.ParseDOT([]byte(dotInput))
	if err != nil {
		t.Fatalf("ParseDOT: %v", err)
	}

	// JSON 里没有 lonely，补上后三者一致
	js.AddVertex("lonely")

	opt := cmpopts.IgnoreUnexported(graph.Graph{})
	if diff := cmp.Diff(text, js, opt); diff != "" {
		t.Errorf("text vs json mismatch (-text +json):\n%s", diff)
	}
	if diff := cmp.Diff(text, dot, opt); diff != "" {
		t.Errorf("text vs dot mismatch (-text +dot):\n%s", diff)
	}

	if text.Len() != 7 {
		t.Errorf("Len = %d, want 7", text.Len())
	}
	id, err := text.Index("lonely")
	if err != nil || id != 6 {
		t.Errorf("Index(lonely) = %d, %v", id, err)
	}
	if name, _ := text.Name(3); name != "x" {
		t.Errorf("Name(3) = %q, want x", name)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		kind string
		in   string
	}{
		{"text bad weight", graph.KindText, "a b heavy"},
		{"text too many fields", graph.KindText, "a b 1 2"},
		{"json invalid", graph.KindJSON, `{"edges": [`},
		{"json edges not array", graph.KindJSON, `{"edges": 3}`},
		{"json missing endpoint", graph.KindJSON, `{"edges": [{"from": "a"}]}`},
		{"json short array", graph.KindJSON, `{"edges": [["a"]]}`},
		{"json string weight", graph.KindJSON, `{"edges": [["a", "b", "w"]]}`},
		{"dot syntax", graph.KindDOT, `graph { a -- }`},
		{"dot bad weight", graph.KindDOT, `graph { a -- b [weight=heavy]; }`},
		{"text nan weight", graph.KindText, "a b nan"},
		{"text inf weight", graph.KindText, "a b inf"},
		{"text negative inf weight", graph.KindText, "a b -Inf"},
		{"text overflow weight", graph.KindText, "a b 1e999"},
		{"text line too long", graph.KindText, "a b\n" + strings.Repeat("x", 17<<20)},
		{"json overflow weight", graph.KindJSON, `{"edges": [["a", "b", 1e999]]}`},
		{"dot nan weight", graph.KindDOT, `graph { a -- b [weight=nan]; }`},
		{"dot inf weight", graph.KindDOT, `graph { a -- b [weight="inf"]; }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := graph.Parse([]byte(tt.in), tt.kind)
			if !errors.Is(err, errorutil.ErrInvalidData) {
				t.Errorf("err = %v, want ErrInvalidData", err)
			}
		})
	}

	if _, err := graph.Parse(nil, "yaml"); !errors.Is(err, errorutil.ErrInvalidArgument) {
		t.Errorf("unknown kind err = %v", err)
	}
	if _, err := (graph.New()).Index("missing"); !errors.Is(err, errorutil.ErrInvalidData) {
		t.Errorf("Index(missing) err = %v", err)
	}
}

func TestKindFromPath(t *testing.T) {
	cases := map[string]string{
		"edges.json":  graph.KindJSON,
		"G.DOT":       graph.KindDOT,
		"deps.gv":     graph.KindDOT,
		"edges.txt":   graph.KindText,
		"-":           graph.KindText,
		"no_ext_name": graph.KindText,
	}
	for path, want := range cases {
		if got := graph.KindFromPath(path); got != want {
			t.Errorf("KindFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestClone(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b", 1)

	c := g.Clone()
	c.AddEdge("b", "c", 2)
	c.Links[0].Weight = 10

	if g.Len() != 2 || len(g.Links) != 1 || g.Links[0].Weight != 1 {
		t.Errorf("original modified through clone: %+v", g)
	}
	if id, err := c.Index("c"); err != nil || id != 2 {
		t.Errorf("clone Index(c) = %d, %v", id, err)
	}
	if id, err := c.Index("a"); err != nil || id != 0 {
		t.Errorf("clone index not rebuilt: %d, %v", id, err)
	}
}

func TestParseLongLine(t *testing.T) {
	// 超过 bufio 默认 64KiB 的行也能读
	long := strings.Repeat("v", 100<<10)
	g, err := graph.Parse([]byte("a "+long+" 2\n"), graph.KindText)
	if err != nil {
		t.Fatal(err)
	}
	if id, err := g.Index(long); err != nil || id != 1 {
		t.Errorf("Index(long) = %d, %v", id, err)
	}
}
