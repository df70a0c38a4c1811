package respond

// MessageListRespond 聊天记录单项响应
// 使用位置:
//   - internal/service/message/service.go: ListMessages
type MessageListRespond struct {
	MessageId     string `json:"message_id"`
	SenderEmail   string `json:"sender_email"`
	ReceiverEmail string `json:"receiver_email"`
	Body          string `json:"body"`
	SentAt        string `json:"sent_at"`
	IsRead        bool   `json:"is_read"`
	ReadAt        string `json:"read_at,omitempty"`
}
