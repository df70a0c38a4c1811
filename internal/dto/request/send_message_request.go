package request

// SendMessageRequest 发送消息请求
// 使用位置:
//   - handler/message_handler.go: SendMessageHandler
type SendMessageRequest struct {
	// ConversationId 会话 ID = 已接受连接的请求 UUID
	ConversationId string `json:"conversation_id" binding:"required"`
	// SenderEmail 发送者邮箱，必须是会话当事人
	SenderEmail string `json:"sender_email" binding:"required,email"`
	// Body 消息正文，服务端会去除首尾空白
	Body string `json:"body" binding:"required"`
}
