package stats

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"bondhon_server/internal/dao/mysql/repository"
	myredis "bondhon_server/internal/dao/redis"
	"bondhon_server/internal/dto/respond"
	"bondhon_server/pkg/constants"
	"bondhon_server/pkg/errorx"
)

// statsService 会员维度的连接统计聚合
// 三个计数直接在连接表上聚合，不维护单独的计数器
type statsService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

func NewStatsService(repos *repository.Repositories, cache myredis.AsyncCacheService) *statsService {
	return &statsService{repos: repos, cache: cache}
}

// GetStats 统计某会员发起数、收到数、已建立连接数
// 身份不存在不算错误，返回全零
func (s *statsService) GetStats(ctx context.Context, memberEmail string) (respond.StatsRespond, error) {
	cacheKey := "stats_" + memberEmail

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var rsp respond.StatsRespond
		if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
			return rsp, nil
		}
		zap.L().Error("Unmarshal stats cache failed", zap.Error(err))
	}

	var rsp respond.StatsRespond
	var err error
	if rsp.SentCount, err = s.repos.Connection.CountBySender(ctx, memberEmail); err != nil {
		zap.L().Error("统计发起数失败", zap.String("member", memberEmail), zap.Error(err))
		return respond.StatsRespond{}, errorx.ErrUnavailable
	}
	if rsp.ReceivedCount, err = s.repos.Connection.CountByReceiver(ctx, memberEmail); err != nil {
		zap.L().Error("统计收到数失败", zap.String("member", memberEmail), zap.Error(err))
		return respond.StatsRespond{}, errorx.ErrUnavailable
	}
	if rsp.AcceptedCount, err = s.repos.Connection.CountAcceptedByMember(ctx, memberEmail); err != nil {
		zap.L().Error("统计已连接数失败", zap.String("member", memberEmail), zap.Error(err))
		return respond.StatsRespond{}, errorx.ErrUnavailable
	}

	s.cache.SubmitTask(func() {
		data, merr := json.Marshal(rsp)
		if merr != nil {
			zap.L().Error("Marshal stats failed", zap.Error(merr))
			return
		}
		_ = s.cache.Set(context.Background(), cacheKey, string(data), time.Minute*constants.REDIS_TIMEOUT)
	})

	return rsp, nil
}
