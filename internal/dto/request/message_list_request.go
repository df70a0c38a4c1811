package request

// MessageListRequest 获取会话聊天记录请求
// 使用位置:
//   - handler/message_handler.go: MessageListHandler
type MessageListRequest struct {
	// ConversationId 会话 ID
	ConversationId string `json:"conversation_id" form:"conversation_id" binding:"required"`
}
