package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dsu_tool/pkg/errorutil"
	"dsu_tool/pkg/logutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sampleEdges = `# 0-1-2-3 连成一片，4 孤立
n0 n1 4
n2 n3 1
n1 n2 2
n0 n3 9
n4
`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"-l", "stdout"}, args...))
	err := cmd.Execute()
	return out.String(), errorutil.ExitCodeFromError(err)
}

func TestComponentsCommand(t *testing.T) {
	path := writeInput(t, "g.txt", sampleEdges)

	out, code := run(t, "components", "-i", path)
	require.Equal(t, errorutil.CodeSuccess, code, out)
	assert.Contains(t, out, "n0 n1 n2 n3")
	assert.Contains(t, out, "共 5 个元素, 2 个连通分量")

	out, code = run(t, "components", "-i", path, "-t", "json", "-F", "one")
	require.Equal(t, errorutil.CodeSuccess, code, out)
	doc := gjson.Parse(out)
	assert.Equal(t, int64(2), doc.Get("components").Int())
	assert.Equal(t, int64(4), doc.Get("groups.0.size").Int())
	assert.Equal(t, int64(3), doc.Get("groups.0.max").Int())
	assert.Equal(t, "n4", doc.Get("groups.1.members.0").String())
}

func TestMSTCommand(t *testing.T) {
	path := writeInput(t, "g.json", `{"edges": [["a","b",3], ["b","c",1], ["a","c",1]]}`)

	out, code := run(t, "mst", "-i", path, "-t", "json")
	require.Equal(t, errorutil.CodeSuccess, code, out)
	doc := gjson.Parse(out)
	assert.Equal(t, 2.0, doc.Get("total").Float())
	assert.Equal(t, int64(1), doc.Get("trees").Int())
	assert.Equal(t, int64(2), doc.Get("edges.#").Int())

	out, code = run(t, "mst", "-i", path)
	require.Equal(t, errorutil.CodeSuccess, code, out)
	assert.Contains(t, out, "总权重 2")
}

func TestCycleCommand(t *testing.T) {
	tree := writeInput(t, "tree.dot", `graph { a -- b; b -- c; d; }`)
	out, code := run(t, "cycle", "-i", tree)
	assert.Equal(t, errorutil.CodeSuccess, code)
	assert.Contains(t, out, "无环")

	loop := writeInput(t, "loop.txt", sampleEdges)
	out, code = run(t, "cycle", "-i", loop, "-t", "json")
	assert.Equal(t, exitCodeCycleFound, code)
	doc := gjson.Parse(strings.TrimSpace(out))
	assert.True(t, doc.Get("cycle").Bool())
	assert.Equal(t, "n0", doc.Get("from").String())
	assert.Equal(t, "n3", doc.Get("to").String())
}

func TestQueryCommand(t *testing.T) {
	path := writeInput(t, "g.txt", sampleEdges)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"same connected", []string{"same", "n0", "n3"}, "true"},
		{"same isolated", []string{"same", "n0", "n4"}, "false"},
		{"size", []string{"size", "n2"}, "4"},
		{"size isolated", []string{"size", "n4"}, "1"},
		{"bounds", []string{"bounds", "n1"}, "0(n0) 3(n3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := run(t, append([]string{"query", "-i", path}, tt.args...)...)
			require.Equal(t, errorutil.CodeSuccess, code, out)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}

	out, code := run(t, "query", "-i", path, "-t", "json", "bounds", "n2")
	require.Equal(t, errorutil.CodeSuccess, code, out)
	doc := gjson.Parse(out)
	assert.Equal(t, "bounds", doc.Get("query").String())
	assert.Equal(t, int64(0), doc.Get("result.min").Int())
	assert.Equal(t, int64(3), doc.Get("result.max").Int())

	// find 返回的代表元一定和自己在同一个分量里
	out, code = run(t, "query", "-i", path, "find", "n3")
	require.Equal(t, errorutil.CodeSuccess, code)
	root := strings.TrimSpace(out)
	out, _ = run(t, "query", "-i", path, "same", root, "n0")
	assert.Equal(t, "true", strings.TrimSpace(out))
}

func TestCommandErrors(t *testing.T) {
	path := writeInput(t, "g.txt", sampleEdges)
	bad := writeInput(t, "bad.txt", "a b c d\n")
	nan := writeInput(t, "nan.txt", "c d 9\na b nan\nc d 1\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown query", []string{"query", "-i", path, "merge", "n0"}, errorutil.CodeInvalidUsage},
		{"same needs two", []string{"query", "-i", path, "same", "n0"}, errorutil.CodeInvalidUsage},
		{"unknown vertex", []string{"query", "-i", path, "size", "zz"}, errorutil.CodeInvalidData},
		{"missing file", []string{"components", "-i", filepath.Join(t.TempDir(), "none.txt")}, errorutil.CodeMissingInput},
		{"bad input", []string{"components", "-i", bad}, errorutil.CodeInvalidData},
		{"nan weight", []string{"mst", "-i", nan, "-t", "json"}, errorutil.CodeInvalidData},
		{"bad output", []string{"mst", "-i", path, "-t", "xml"}, errorutil.CodeInvalidUsage},
		{"bad flag", []string{"mst", "--nope"}, errorutil.CodeInvalidUsage},
		{"bad log level", []string{"-e", "LOUD", "mst", "-i", path}, errorutil.CodeInvalidUsage},
		{"extra args", []string{"components", "-i", path, "x"}, errorutil.CodeInvalidUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := run(t, tt.args...)
			assert.Equal(t, tt.want, code, out)
		})
	}
}

func TestReportError(t *testing.T) {
	var logs bytes.Buffer
	logutil.SetOutput(&logs, logutil.INFO)
	defer logutil.SetOutput(&bytes.Buffer{}, logutil.INFO)

	var stderr bytes.Buffer
	reportError(&stderr, nil)
	assert.Empty(t, stderr.String())

	cycle := &errorutil.ExitErrorWithCode{Code: errorutil.CodeAssertionFailed, CmdExitCode: exitCodeCycleFound}
	reportError(&stderr, cycle)
	assert.Empty(t, stderr.String(), "cycle result is not an error report")

	cause := errorutil.ErrInvalidData
	reportError(&stderr, fmt.Errorf("读取 g.txt: %w", cause))
	doc := gjson.Parse(strings.TrimSpace(stderr.String()))
	assert.Equal(t, int64(errorutil.CodeInvalidData), doc.Get("code").Int())
	assert.Contains(t, doc.Get("error").String(), "读取 g.txt")
	assert.Contains(t, logs.String(), "根因: "+cause.Error())
}
