package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Level 日志级别，实现了 pflag.Value 可以直接绑定到 cobra 的 flag 上
type Level int

// 定义日志级别
const (
	DEBUG Level = iota // 0
	INFO               // 1
	WARN               // 2
	ERROR              // 3
)

// 定义日志级别映射字符串
var levelNames = map[string]Level{
	"DEBUG": DEBUG,
	"INFO":  INFO,
	"WARN":  WARN,
	"ERROR": ERROR,
}

func (l *Level) String() string {
	for name, v := range levelNames {
		if v == *l {
			return name
		}
	}
	return fmt.Sprintf("Level(%d)", int(*l))
}

func (l *Level) Set(val string) error {
	v, ok := levelNames[strings.ToUpper(strings.TrimSpace(val))]
	if !ok {
		return fmt.Errorf("无效的日志级别: %s (DEBUG/INFO/WARN/ERROR)", val)
	}
	*l = v
	return nil
}

func (l *Level) Type() string {
	return "level"
}

var (
	mu           sync.Mutex
	logger       *log.Logger
	logFile      *os.File
	currentLevel = INFO // 默认日志级别
)

// InitLogger 初始化日志，允许指定输出目标（stdout 或 文件）
func InitLogger(output string, level Level) error {
	var w io.Writer
	if output == "" || output == "stdout" {
		CloseLogger()
		w = os.Stdout
	} else {
		// 以追加模式打开日志文件，不会覆盖已有内容
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("无法创建日志文件 %s: %w", output, err)
		}
		CloseLogger()
		mu.Lock()
		logFile = f
		mu.Unlock()
		w = f
	}
	SetOutput(w, level)
	return nil
}

// SetOutput 直接指定输出，测试里用 bytes.Buffer
func SetOutput(w io.Writer, level Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", log.LstdFlags)
	currentLevel = level
}

// logMessage 记录日志，仅输出符合当前级别的日志
func logMessage(level Level, prefix, msg string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags) // 没初始化就打到标准错误
	}
	if level < currentLevel { // 值越小打印得越多
		return
	}
	_, file, line, _ := runtime.Caller(2) // 获取真正调用的文件+行号
	logger.Printf("[%s:%d] %s %s", filepath.Base(file), line, prefix, fmt.Sprintf(msg, args...))
}

// Debug 记录 DEBUG 日志
func Debug(msg string, args ...any) {
	logMessage(DEBUG, "[DBG]", msg, args...)
}

// Info 记录 INFO 日志
func Info(msg string, args ...any) {
	logMessage(INFO, "[INFO]", msg, args...)
}

// Warn 记录 WARN 日志
func Warn(msg string, args ...any) {
	logMessage(WARN, "[WARN]", msg, args...)
}

// Error 记录 ERROR 日志，附带调用堆栈
func Error(msg string, args ...any) {
	size := 1024 // 初始缓冲区大小
	for {
		buf := make([]byte, size)
		n := runtime.Stack(buf, false)
		if n < size {
			// 堆栈里可能带 %，不能拼进格式串
			logMessage(ERROR, "[ERR]", "%s\n调用堆栈:\n%s", fmt.Sprintf(msg, args...), buf[:n])
			return
		}
		// 扩展缓冲区大小，倍增策略
		size *= 2
	}
}

// 关闭日志文件（如果有的话）
func CloseLogger() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
