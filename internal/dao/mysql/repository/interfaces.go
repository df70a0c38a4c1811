// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"context"
	"time"

	"bondhon_server/internal/model"
)

// ConnectionRepository 连接请求数据访问接口
// 状态机的所有条件写都在这一层获得存储级保证：
// 唯一索引裁决并发创建，状态前置条件下的 UPDATE/DELETE 以影响行数裁决竞争
type ConnectionRepository interface {
	// FindByUuid 根据 UUID 查找连接请求
	FindByUuid(ctx context.Context, uuid string) (*model.ConnectionRequest, error)
	// FindByPair 按无序对查找两人之间的请求（双向同一条）
	FindByPair(ctx context.Context, emailA, emailB string) (*model.ConnectionRequest, error)
	// FindAcceptedByMember 查找某会员参与的全部已接受连接
	FindAcceptedByMember(ctx context.Context, email string) ([]model.ConnectionRequest, error)
	// FindPendingByReceiver 查找发给某会员的全部待处理请求
	FindPendingByReceiver(ctx context.Context, email string) ([]model.ConnectionRequest, error)
	// Create 创建新请求；无序对已存在时返回 CodeConflict
	Create(ctx context.Context, req *model.ConnectionRequest) error
	// UpdateStatusIfPending 仅当当前状态仍为待处理时更新状态，返回影响行数
	UpdateStatusIfPending(ctx context.Context, uuid string, status int8) (int64, error)
	// DeleteIfStatus 仅当当前状态符合预期时物理删除，返回影响行数
	DeleteIfStatus(ctx context.Context, uuid string, expected int8) (int64, error)
	// TouchLastActivity 仅当连接仍为已接受时刷新最近消息时间，返回影响行数
	TouchLastActivity(ctx context.Context, uuid string, at time.Time) (int64, error)
	// CountBySender 统计某会员发出的请求数
	CountBySender(ctx context.Context, email string) (int64, error)
	// CountByReceiver 统计某会员收到的请求数
	CountByReceiver(ctx context.Context, email string) (int64, error)
	// CountAcceptedByMember 统计某会员参与的已接受连接数（双向）
	CountAcceptedByMember(ctx context.Context, email string) (int64, error)
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// Create 追加一条消息
	Create(ctx context.Context, message *model.Message) error
	// FindByConversationId 按会话查找全部消息，发送时间升序
	FindByConversationId(ctx context.Context, conversationId string) ([]model.Message, error)
	// FindLatestByConversationId 查找会话内最新一条消息，没有消息时返回 CodeNotFound
	FindLatestByConversationId(ctx context.Context, conversationId string) (*model.Message, error)
	// MarkRead 将会话内发给 reader 且未读的消息全部置为已读，返回置位条数
	MarkRead(ctx context.Context, conversationId, readerEmail string, readAt time.Time) (int64, error)
	// CountUnreadByReceiver 统计发给某会员且未读的消息总数（跨全部会话）
	CountUnreadByReceiver(ctx context.Context, email string) (int64, error)
}

// IdentityRepository 会员身份只读访问接口（数据归外部身份服务所有）
type IdentityRepository interface {
	// FindByEmail 根据邮箱查找会员身份
	FindByEmail(ctx context.Context, email string) (*model.MemberIdentity, error)
}

// ProfileRepository 会员资料只读访问接口（数据归外部资料服务所有）
type ProfileRepository interface {
	// FindByOwnerEmail 根据所属会员邮箱查找资料
	FindByOwnerEmail(ctx context.Context, email string) (*model.Profile, error)
	// FindByUuid 根据资料 UUID 查找资料
	FindByUuid(ctx context.Context, uuid string) (*model.Profile, error)
}
