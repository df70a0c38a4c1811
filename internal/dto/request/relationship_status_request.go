package request

// RelationshipStatusRequest 查询两人之间的关系状态
// 资料详情页用它渲染"已连接/申请中/可发起"指示
// 使用位置:
//   - handler/connection_handler.go: RelationshipStatusHandler
type RelationshipStatusRequest struct {
	// SelfEmail 查询发起者（视角）邮箱
	SelfEmail string `json:"self_email" form:"self_email" binding:"required,email"`
	// OtherEmail 对方邮箱
	OtherEmail string `json:"other_email" form:"other_email" binding:"required,email"`
}
