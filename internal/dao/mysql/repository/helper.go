package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"time"

	"gorm.io/gorm"

	"bondhon_server/pkg/constants"
	"bondhon_server/pkg/errorx"
)

// ==================== 错误包装辅助函数 ====================

// wrapDBError 包装数据库错误
// 根据错误类型返回不同的错误码：
//   - ErrRecordNotFound -> CodeNotFound
//   - ErrDuplicatedKey  -> CodeConflict（条件写的败者，绝不能被当成瞬时故障）
//   - 其他错误 -> CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorx.Wrap(err, errorx.CodeConflict, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 包装数据库错误（支持格式化消息）
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorx.Wrapf(err, errorx.CodeConflict, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// ==================== 瞬时故障重试 ====================

// isTransient 判断是否为可重试的存储层瞬时故障（连接类错误）
// 逻辑性失败（未找到、重复键、影响行数为 0）永远不在此列
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// withRetry 对只读查询做有限次退避重试
// 重试耗尽后由调用方包装为 CodeUnavailable 返回
func withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < constants.DB_RETRY_MAX; attempt++ {
		if err = op(); err == nil || !isTransient(err) {
			return err
		}
		backoff := time.Duration(constants.DB_RETRY_BACKOFF_MS*(attempt+1)) * time.Millisecond
		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff):
		}
	}
	return err
}
