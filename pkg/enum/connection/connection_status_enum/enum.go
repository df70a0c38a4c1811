// Package connection_status_enum 定义连接请求状态
// 状态只允许 PENDING -> ACCEPTED / PENDING -> REJECTED 两种迁移
package connection_status_enum

const (
	PENDING  int8 = 0 // 等待接收方处理
	ACCEPTED int8 = 1 // 已接受，双方建立连接
	REJECTED int8 = 2 // 已拒绝，终态
)

// Text 返回状态的对外文本表示（API 返回值使用）
func Text(status int8) string {
	switch status {
	case PENDING:
		return "pending"
	case ACCEPTED:
		return "accepted"
	case REJECTED:
		return "rejected"
	default:
		return "unknown"
	}
}
