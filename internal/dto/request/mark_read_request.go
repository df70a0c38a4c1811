package request

// MarkReadRequest 标记会话已读请求
// 使用位置:
//   - handler/message_handler.go: MarkReadHandler
type MarkReadRequest struct {
	// ConversationId 会话 ID
	ConversationId string `json:"conversation_id" binding:"required"`
	// ReaderEmail 阅读方邮箱，只会置位发给该会员的消息
	ReaderEmail string `json:"reader_email" binding:"required,email"`
}
