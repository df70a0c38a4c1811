package model

import (
	"gorm.io/gorm"
)

// MemberIdentity 会员身份模型（外部身份服务所有）
// 本引擎只读，用于在发起连接前校验发起方/接收方身份
// 注册、验证、封禁等写入均发生在身份服务侧
type MemberIdentity struct {
	gorm.Model
	Email      string `gorm:"column:email;uniqueIndex;type:varchar(255);not null;comment:会员邮箱，全局自然键"`
	IsVerified bool   `gorm:"column:is_verified;not null;default:false;comment:是否完成验证"`
	IsActive   bool   `gorm:"column:is_active;not null;default:true;comment:账号是否启用"`
}

func (MemberIdentity) TableName() string {
	return "member_identity"
}
