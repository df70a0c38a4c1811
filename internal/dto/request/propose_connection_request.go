package request

// ProposeConnectionRequest 发起连接请求
// 接收方可以用邮箱或资料 ID 指定，二选一；两者都传时以邮箱为准
// 使用位置:
//   - handler/connection_handler.go: ProposeConnectionHandler
type ProposeConnectionRequest struct {
	// SenderEmail 发起方邮箱
	SenderEmail string `json:"sender_email" binding:"required,email"`
	// ReceiverEmail 接收方邮箱
	ReceiverEmail string `json:"receiver_email" binding:"omitempty,email"`
	// ReceiverProfileId 接收方资料 ID（从资料浏览页发起时使用）
	ReceiverProfileId string `json:"receiver_profile_id"`
}
