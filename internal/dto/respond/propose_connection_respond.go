package respond

// ProposeConnectionRespond 发起连接响应
// 使用位置:
//   - internal/service/connection/service.go: ProposeConnection
type ProposeConnectionRespond struct {
	RequestId     string `json:"request_id"`
	SenderEmail   string `json:"sender_email"`
	ReceiverEmail string `json:"receiver_email"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}
