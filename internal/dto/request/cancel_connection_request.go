package request

// CancelConnectionRequest 取消待处理的连接请求
// 使用位置:
//   - handler/connection_handler.go: CancelConnectionHandler
type CancelConnectionRequest struct {
	// RequestId 连接请求 UUID
	RequestId string `json:"request_id" binding:"required"`
}
