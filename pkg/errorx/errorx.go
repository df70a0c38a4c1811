package errorx

import (
	"errors"
	"fmt"
)

// CodeError 带业务错误码的自定义错误
// 实现了 error 接口，支持 %w 包装底层错误，且能被 errors.Is/errors.As 识别
type CodeError struct {
	Code  int    // 业务错误码
	Msg   string // 错误消息
	cause error  // 被包装的底层错误
}

// Error 实现 Go 标准 error 接口
// 当存在底层错误时，返回格式为 "消息: 底层错误"；否则仅返回消息
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap 实现 errors.Unwrap 接口，支持 errors.Is/errors.As 向下追溯
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New 创建一个新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf 创建一个带格式化消息的 CodeError
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap 包装底层错误，添加业务错误码和消息
// 用法: errorx.Wrap(err, CodeNotFound, "连接请求不存在")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf 包装底层错误，支持格式化消息
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode 从错误中提取业务错误码，如果不是 CodeError 则返回默认码
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeUnavailable
}

// 业务状态码常量定义
// 对应关系引擎的错误分类：参数非法、未授权、无权限、不存在、状态冲突、服务不可用
const (
	CodeSuccess      = 1000 // 成功
	CodeInvalidParam = 1001 // 请求参数错误
	CodeUnauthorized = 1002 // 发起者身份未通过校验
	CodeForbidden    = 1003 // 发起者不是该资源的当事人
	CodeNotFound     = 1004 // 资源不存在或状态对该操作不可见
	CodeConflict     = 1005 // 操作会破坏关系不变量
	CodeUnavailable  = 1006 // 存储层暂时不可用
	CodeDBError      = 1010 // 数据库错误
	CodeCacheError   = 1011 // 缓存错误
)

// 预定义常用错误实例
// 既可直接返回，也可用于 errors.Is 比较
// Conflict 必须携带足够的细节区分具体冲突场景（待处理/已连接/已处理完）
var (
	ErrInvalidParam = New(CodeInvalidParam, "请求参数错误")
	ErrUnavailable  = New(CodeUnavailable, "服务暂时不可用")

	// ErrAlreadyPending 两人之间已有待处理的连接请求
	ErrAlreadyPending = New(CodeConflict, "两人之间已有待处理的连接请求")
	// ErrAlreadyConnected 两人已经建立了连接
	ErrAlreadyConnected = New(CodeConflict, "两人已建立连接")
	// ErrAlreadyResolved 请求已被接受或拒绝，不能再次响应/取消
	ErrAlreadyResolved = New(CodeConflict, "该连接请求已被处理")
)

// IsNotFound 检查错误是否为"未找到"类型
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && codeErr.Code == CodeNotFound {
		return true
	}
	return err != nil && err.Error() == "record not found"
}

// IsConflict 检查错误是否为状态冲突类型
func IsConflict(err error) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == CodeConflict
}
