package respond

// SendMessageRespond 发送消息响应
// MessageId 以字符串返回，避免 JavaScript 端 int64 精度丢失
// 使用位置:
//   - internal/service/message/service.go: SendMessage
type SendMessageRespond struct {
	MessageId string `json:"message_id"`
	SentAt    string `json:"sent_at"`
}
