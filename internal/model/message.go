// Package model 定义数据库实体模型
// 本文件定义消息模型，消息只能挂在已接受的连接之下
package model

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Message 消息模型
// 对应数据库 message 表
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识
	// 使用雪花算法生成的 int64 类型 ID
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// ConversationId 会话标识 = 所属连接请求的 Uuid
	// 连接被解除后该会话即不可达，消息行本身保留（保留策略归存储层）
	ConversationId string `gorm:"column:conversation_id;index;type:char(20);not null;comment:会话uuid"`

	// SenderEmail 发送者邮箱，必须是连接的当事人之一
	SenderEmail string `gorm:"column:sender_email;index;type:varchar(255);not null;comment:发送者邮箱"`

	// ReceiverEmail 接收者邮箱，即连接中的另一方
	ReceiverEmail string `gorm:"column:receiver_email;index;type:varchar(255);not null;comment:接收者邮箱"`

	// Body 消息正文，入库前已去除首尾空白且非空
	Body string `gorm:"column:body;type:TEXT;not null;comment:消息正文"`

	// SentAt 发送时间，列表按此字段升序展示
	SentAt time.Time `gorm:"column:sent_at;index;not null;comment:发送时间"`

	// IsRead 接收方是否已读
	IsRead bool `gorm:"column:is_read;not null;default:false;comment:是否已读"`

	// ReadAt 已读时间，未读时为 NULL
	ReadAt sql.NullTime `gorm:"column:read_at;comment:已读时间"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
