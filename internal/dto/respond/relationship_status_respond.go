package respond

// RelationshipStatusRespond 两人关系状态响应
// Exists=false 时其余字段为零值，前端据此渲染"可发起连接"
// IsInitiator 表示查询视角方是否是请求发起者（"你发出的" vs "你收到的"）
// 使用位置:
//   - internal/service/connection/service.go: FindRelationship
type RelationshipStatusRespond struct {
	Exists      bool   `json:"exists"`
	RequestId   string `json:"request_id,omitempty"`
	Status      string `json:"status,omitempty"`
	IsInitiator bool   `json:"is_initiator,omitempty"`
}
