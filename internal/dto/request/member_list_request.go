package request

// MemberListRequest 按会员邮箱查询列表/计数的通用请求
// 使用位置:
//   - handler/conversation_handler.go: ConversationListHandler, FriendListHandler
//   - handler/connection_handler.go: PendingListHandler
//   - handler/message_handler.go: UnreadCountHandler
//   - handler/stats_handler.go: StatsHandler
type MemberListRequest struct {
	// MemberEmail 会员邮箱
	MemberEmail string `json:"member_email" form:"member_email" binding:"required,email"`
}
