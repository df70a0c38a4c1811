// Package model 定义数据库实体模型
// 本文件定义连接请求模型，是关系状态机的唯一事实来源
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// ConnectionRequest 连接请求模型
// 对应数据库 connection_request 表
// sender/receiver 的方向记录了是谁发起的请求；查询时按无序对对称处理
type ConnectionRequest struct {
	gorm.Model

	// Uuid 连接请求唯一标识
	// 格式：C + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:连接请求uuid"`

	// PairKey 无序对键：min(email)|max(email)
	// 唯一索引保证任意两人之间最多存在一条请求（无论方向）
	// 并发双向发起时由该索引仲裁，败者收到重复键错误
	PairKey string `gorm:"column:pair_key;uniqueIndex;type:varchar(512);not null;comment:无序对键"`

	// SenderEmail 发起方邮箱
	SenderEmail string `gorm:"column:sender_email;index;type:varchar(255);not null;comment:发起方邮箱"`

	// ReceiverEmail 接收方邮箱
	ReceiverEmail string `gorm:"column:receiver_email;index;type:varchar(255);not null;comment:接收方邮箱"`

	// Status 请求状态
	// 0=待处理, 1=已接受, 2=已拒绝
	// 参见 pkg/enum/connection/connection_status_enum
	Status int8 `gorm:"column:status;not null;comment:状态，0.待处理，1.已接受，2.已拒绝"`

	// LastActivityAt 最近一次消息往来时间
	// 仅在会话内产生消息后才有值，用于会话列表排序
	LastActivityAt sql.NullTime `gorm:"column:last_activity_at;comment:最近消息时间"`
}

// TableName 指定表名
func (ConnectionRequest) TableName() string {
	return "connection_request"
}

// PairKey 计算无序对键，两个方向得到同一个键
func PairKey(emailA, emailB string) string {
	if emailA > emailB {
		emailA, emailB = emailB, emailA
	}
	return emailA + "|" + emailB
}

// OtherParty 返回相对 self 的对方邮箱
// self 不是当事人时返回空字符串
func (c *ConnectionRequest) OtherParty(self string) string {
	switch self {
	case c.SenderEmail:
		return c.ReceiverEmail
	case c.ReceiverEmail:
		return c.SenderEmail
	default:
		return ""
	}
}

// IsParty 判断 email 是否为该请求的当事人之一
func (c *ConnectionRequest) IsParty(email string) bool {
	return email == c.SenderEmail || email == c.ReceiverEmail
}
