package respond

// FriendListRespond 好友列表单项响应
// 只包含资料审核通过的对方；按建立连接时间倒序
// 使用位置:
//   - internal/service/conversation/service.go: ListFriends
type FriendListRespond struct {
	ConversationId   string `json:"conversation_id"`
	CounterpartEmail string `json:"counterpart_email"`
	Name             string `json:"name"`
	Avatar           string `json:"avatar"`
	Department       string `json:"department,omitempty"`
	District         string `json:"district,omitempty"`
	ConnectedAt      string `json:"connected_at"`
}
