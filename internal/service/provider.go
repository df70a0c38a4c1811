package service

import (
	dao "bondhon_server/internal/dao/mysql"
	"bondhon_server/internal/dao/mysql/repository"
	myredis "bondhon_server/internal/dao/redis"
	"bondhon_server/internal/service/connection"
	"bondhon_server/internal/service/conversation"
	"bondhon_server/internal/service/message"
	"bondhon_server/internal/service/stats"
)

// Services 业务服务集合，构造后只读
type Services struct {
	Connection   ConnectionService
	Conversation ConversationService
	Message      MessageService
	Stats        StatsService
}

// NewServices 用仓储集合和缓存服务装配全部业务服务
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService) *Services {
	return &Services{
		Connection:   connection.NewConnectionService(repos, cache),
		Conversation: conversation.NewConversationService(repos, cache),
		Message:      message.NewMessageService(repos, cache),
		Stats:        stats.NewStatsService(repos, cache),
	}
}

// Svc 全局服务集合，供 handler 层使用
var Svc *Services

// InitServices 在 dao 与 redis 初始化完成后调用
func InitServices() {
	Svc = NewServices(dao.Repos, myredis.GetCacheService())
}
