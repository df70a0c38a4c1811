package respond

// MarkReadRespond 标记已读响应
// Count 为本次置位的消息条数，0 是合法结果（幂等调用）
// 使用位置:
//   - internal/service/message/service.go: MarkRead
type MarkReadRespond struct {
	Count int64 `json:"count"`
}

// UnreadCountRespond 全局未读角标响应
// 使用位置:
//   - internal/service/message/service.go: UnreadCount
type UnreadCountRespond struct {
	Count int64 `json:"count"`
}
