// Package service 提供业务逻辑层
// 本文件定义各 Service 接口，Handler 层依赖接口而非具体实现
package service

import (
	"context"

	"bondhon_server/internal/dto/request"
	"bondhon_server/internal/dto/respond"
)

// ConnectionService 连接请求状态机
// 负责两人关系的发起/响应/取消/解除与对称查询，保护三条不变量：
// 任意两人之间最多一条请求（双向合并）、不能连接自己、
// 只有待处理状态可以迁移到已接受/已拒绝
type ConnectionService interface {
	// ProposeConnection 发起连接请求
	ProposeConnection(ctx context.Context, req request.ProposeConnectionRequest) (respond.ProposeConnectionRespond, error)
	// RespondToConnection 接受或拒绝待处理的请求
	RespondToConnection(ctx context.Context, requestId, decision string) error
	// CancelPendingRequest 发起方撤回仍在待处理状态的请求
	CancelPendingRequest(ctx context.Context, requestId string) error
	// UnfriendConnection 任意一方解除已接受的连接
	UnfriendConnection(ctx context.Context, req request.UnfriendConnectionRequest) error
	// FindRelationship 对称查询两人之间的关系状态，不存在不算错误
	FindRelationship(ctx context.Context, selfEmail, otherEmail string) (respond.RelationshipStatusRespond, error)
	// ListPendingRequests 查询发给某会员的待处理请求，按时间倒序
	ListPendingRequests(ctx context.Context, memberEmail string) ([]respond.PendingRequestRespond, error)
}

// ConversationService 会话/好友读侧投影
// 纯派生视图，没有自己的持久状态
type ConversationService interface {
	// ListConversations 某会员的会话列表，按最近活跃倒序
	ListConversations(ctx context.Context, memberEmail string) ([]respond.ConversationListRespond, error)
	// ListFriends 某会员的好友列表，仅含资料审核通过的对方，按建立连接时间倒序
	ListFriends(ctx context.Context, memberEmail string) ([]respond.FriendListRespond, error)
}

// MessageService 消息日志
// 只有已接受的连接才能承载消息
type MessageService interface {
	// SendMessage 在已接受的连接内发送消息
	SendMessage(ctx context.Context, req request.SendMessageRequest) (respond.SendMessageRespond, error)
	// ListMessages 会话聊天记录，发送时间升序
	ListMessages(ctx context.Context, conversationId string) ([]respond.MessageListRespond, error)
	// MarkRead 将会话内发给 reader 的未读消息全部置为已读，返回置位条数
	MarkRead(ctx context.Context, req request.MarkReadRequest) (respond.MarkReadRespond, error)
	// UnreadCount 某会员跨全部会话的未读消息总数
	UnreadCount(ctx context.Context, memberEmail string) (respond.UnreadCountRespond, error)
}

// StatsService 连接统计
// 与会话列表共用查询形状，保证数值一致
type StatsService interface {
	// GetStats 某会员的发出/收到/已接受计数
	GetStats(ctx context.Context, memberEmail string) (respond.StatsRespond, error)
}
