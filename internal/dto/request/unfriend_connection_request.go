package request

// UnfriendConnectionRequest 解除已接受的连接
// 支持按请求 ID 或按双方邮箱指定；request_id 为空时必须传两个邮箱
// 使用位置:
//   - handler/connection_handler.go: UnfriendConnectionHandler
type UnfriendConnectionRequest struct {
	// RequestId 连接请求 UUID
	RequestId string `json:"request_id"`
	// EmailA / EmailB 双方邮箱（顺序无关）
	EmailA string `json:"email_a" binding:"omitempty,email"`
	EmailB string `json:"email_b" binding:"omitempty,email"`
}
