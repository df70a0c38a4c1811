package request

// RespondConnectionRequest 响应连接请求
// 使用位置:
//   - handler/connection_handler.go: RespondConnectionHandler
type RespondConnectionRequest struct {
	// RequestId 连接请求 UUID
	RequestId string `json:"request_id" binding:"required"`
	// Decision 处理决定，仅允许 accepted / rejected
	Decision string `json:"decision" binding:"required,oneof=accepted rejected"`
}
