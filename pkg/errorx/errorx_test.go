package errorx

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDBError, "查询失败")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if err.Error() != "查询失败: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(CodeNotFound, "无")); got != CodeNotFound {
		t.Errorf("GetCode = %d, want %d", got, CodeNotFound)
	}
	// 包一层普通错误仍能提取到错误码
	wrapped := fmt.Errorf("outer: %w", New(CodeConflict, "冲突"))
	if got := GetCode(wrapped); got != CodeConflict {
		t.Errorf("GetCode wrapped = %d, want %d", got, CodeConflict)
	}
	// 非 CodeError 统一归为服务不可用
	if got := GetCode(errors.New("plain")); got != CodeUnavailable {
		t.Errorf("GetCode plain = %d, want %d", got, CodeUnavailable)
	}
}

func TestConflictHelpers(t *testing.T) {
	for _, err := range []error{ErrAlreadyPending, ErrAlreadyConnected, ErrAlreadyResolved} {
		if !IsConflict(err) {
			t.Errorf("%v should be conflict", err)
		}
		if IsNotFound(err) {
			t.Errorf("%v should not be not-found", err)
		}
	}
	if !IsNotFound(New(CodeNotFound, "无")) {
		t.Error("CodeNotFound should be not-found")
	}
	if IsConflict(nil) || IsNotFound(nil) {
		t.Error("nil is neither conflict nor not-found")
	}
}
