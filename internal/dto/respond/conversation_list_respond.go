package respond

// ConversationListRespond 会话列表单项响应
// 对方资料缺失时 CounterpartName/Avatar 为占位值，条目不缺席
// 使用位置:
//   - internal/service/conversation/service.go: ListConversations
type ConversationListRespond struct {
	ConversationId    string `json:"conversation_id"`
	CounterpartEmail  string `json:"counterpart_email"`
	CounterpartName   string `json:"counterpart_name"`
	CounterpartAvatar string `json:"counterpart_avatar"`
	LastMessage       string `json:"last_message,omitempty"`
	LastMessageAt     string `json:"last_message_at,omitempty"`
	LastActivityAt    string `json:"last_activity_at"`
}
