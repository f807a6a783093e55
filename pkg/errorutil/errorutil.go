package errorutil

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	CodeSuccess = 0 // 成功执行

	// 60–69: 用户输入或调用错误
	CodeInvalidUsage = 64 // 命令行用法错误（参数不合法等）
	CodeMissingInput = 65 // 缺失必须输入（如文件、路径等）
	CodeInvalidData  = 66 // 用户输入格式错误（数据非法）

	CodeAssertionFailed = 68 // 断言失败（比如检测到了环）

	CodeInternalErr = 74 // 内部 bug、panic、未捕捉异常
)

// 错误分类，调用方用 errors.Is 判断
var (
	// 构造时元素数量为负数
	ErrInvalidArgument = errors.New("invalid argument")
	// 元素编号不在 [0, n) 范围内
	ErrIndexOutOfRange = errors.New("index out of range")
	// 输入数据(边列表、DOT、JSON)格式不对
	ErrInvalidData = errors.New("invalid data")
)

// IndexError 记录越界的编号和当前元素总数
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

// errors.Is(err, ErrIndexOutOfRange) 可以匹配到
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// CheckIndex 校验 0 <= i < n
func CheckIndex(i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Index: i, Len: n}
	}
	return nil
}

// omitempty 的作用是空字段不出现
type ExitErrorWithCode struct {
	Code        int    `json:"code"`                    // 框架/业务层级错误码
	Message     string `json:"message,omitempty"`       // 可读消息
	CmdExitCode int    `json:"cmd_exit_code,omitempty"` // 需要直接透传的进程退出码
	Err         error  `json:"-"`
}

func (e *ExitErrorWithCode) Error() string {
	if e.Err != nil {
		if e.Message != "" {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Exit with code: %d", e.Code)
}

func (e *ExitErrorWithCode) Unwrap() error {
	return e.Err
}

func NewExitError(code int, err error) error {
	return &ExitErrorWithCode{Code: code, Err: err}
}

// 带错误消息的错误
func NewExitErrorWithMessage(code int, message string, err error) error {
	return &ExitErrorWithCode{Code: code, Message: message, Err: err}
}

// FromError 把错误分类映射成带退出码的错误，已经带码的原样返回
func FromError(err error) error {
	if err == nil || HasExitCode(err) {
		return err
	}
	switch {
	case errors.Is(err, ErrIndexOutOfRange), errors.Is(err, ErrInvalidData):
		return NewExitError(CodeInvalidData, err)
	case errors.Is(err, ErrInvalidArgument):
		return NewExitError(CodeInvalidUsage, err)
	default:
		return NewExitError(CodeInternalErr, err)
	}
}

// os.Exit(errorutil.ExitCodeFromError(err))
func ExitCodeFromError(err error) int {
	if err == nil {
		return CodeSuccess
	}
	var exitErr *ExitErrorWithCode
	if errors.As(FromError(err), &exitErr) {
		if exitErr.CmdExitCode != 0 {
			return exitErr.CmdExitCode
		}
		return exitErr.Code
	}
	return CodeInternalErr
}

// 判断当前的错误是否是带退出码的错误
func HasExitCode(err error) bool {
	var exitErr *ExitErrorWithCode
	return errors.As(err, &exitErr)
}

// 提取原始错误
func RootError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func (e *ExitErrorWithCode) JSON() string {
	type jsonErr struct {
		Code        int    `json:"code"`
		Message     string `json:"message,omitempty"`
		Err         string `json:"error,omitempty"`
		CmdExitCode int    `json:"cmd_exit_code,omitempty"`
	}

	data := jsonErr{
		Code:        e.Code,
		Message:     e.Message,
		CmdExitCode: e.CmdExitCode,
	}
	if e.Err != nil {
		data.Err = e.Err.Error()
	}
	jsonBytes, _ := json.Marshal(data)
	return string(jsonBytes)
}
