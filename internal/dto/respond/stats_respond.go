package respond

// StatsRespond 会员连接统计响应
// AcceptedCount 与会话列表长度保持严格一致（同一查询形状）
// 使用位置:
//   - internal/service/stats/service.go: GetStats
type StatsRespond struct {
	SentCount     int64 `json:"sent_count"`
	ReceivedCount int64 `json:"received_count"`
	AcceptedCount int64 `json:"accepted_count"`
}
