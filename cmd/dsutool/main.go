package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dsu_tool/pkg/errorutil"
	"dsu_tool/pkg/logutil"

	"github.com/spf13/cobra"
)

const TOOL_VERSION = "1.0.0+20261014"

// 找到环时的退出码，便于脚本判断
const exitCodeCycleFound = 3

func newRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:     "dsutool",
		Version: TOOL_VERSION,
		Short:   fmt.Sprintf("dsutool v%s 基于并查集的图工具，支持 components/mst/cycle/query 子命令", TOOL_VERSION),
		Long: fmt.Sprintf(`dsutool v%s 基于并查集的图工具

输入是一张无向图，支持三种格式(默认按扩展名判断):
  text  每行 "u v [weight]"，只有一个名字的行表示孤立顶点，# 后面是注释
  json  {"vertices": [...], "edges": [{"from": "a", "to": "b", "weight": 1}, ["b", "c", 2]]}
  dot   graphviz DOT，权重取边的 weight 属性

顶点按首次出现的顺序编号为 0..n-1`, TOOL_VERSION),
	}

	var logFile string
	logLevel := logutil.WARN

	// 定义全局flag(屁股后面带P的函数才支持短选项)
	rootCmd.PersistentFlags().VarP(&logLevel, "log-level", "e", "日志等级(DEBUG/INFO/WARN/ERROR)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "l", "dsutool.log", "日志文件名(stdout 表示标准输出)")
	// 阻止 Cobra 在命令参数错误时输出帮助
	rootCmd.SilenceUsage = true
	// 阻止Cobra自动打印RunEs返回的错误内容
	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
	})

	// flag 值填充后再初始化日志
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := logutil.InitLogger(logFile, logLevel); err != nil {
			return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
		}
		return nil
	}

	rootCmd.AddCommand(componentsCmd(), mstCmd(), cycleCmd(), queryCmd())
	return rootCmd
}

func main() {
	err := newRootCmd().Execute()
	code := errorutil.ExitCodeFromError(err)
	reportError(os.Stderr, err)

	// 不要用defer，因为defer是在函数返回前执行的，而不是os.Exit()执行前执行
	logutil.CloseLogger()
	os.Exit(code)
}

// reportError 记录失败原因并把错误 JSON 写到 w
func reportError(w io.Writer, err error) {
	var exitErr *errorutil.ExitErrorWithCode
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && exitErr.Code == errorutil.CodeAssertionFailed:
		// 检测到环不是执行错误，结果已经输出
	default:
		logutil.Error("命令执行失败: %v (根因: %v)", err, errorutil.RootError(err))
		if errors.As(errorutil.FromError(err), &exitErr) {
			fmt.Fprintln(w, exitErr.JSON())
		}
	}
}
