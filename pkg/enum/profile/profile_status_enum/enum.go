// Package profile_status_enum 定义会员资料（biodata）的审核状态
// 资料审核流程由外部资料服务负责，本引擎只读取
package profile_status_enum

const (
	PENDING  int8 = 0 // 待审核
	APPROVED int8 = 1 // 审核通过
	REJECTED int8 = 2 // 审核未通过
)
