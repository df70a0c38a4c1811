package respond

// PendingRequestRespond 待处理连接请求列表单项响应
// 发起方资料缺失时降级为占位昵称
// 使用位置:
//   - internal/service/connection/service.go: ListPendingRequests
type PendingRequestRespond struct {
	RequestId    string `json:"request_id"`
	SenderEmail  string `json:"sender_email"`
	SenderName   string `json:"sender_name"`
	SenderAvatar string `json:"sender_avatar"`
	CreatedAt    string `json:"created_at"`
}
