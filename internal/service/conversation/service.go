package conversation

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"bondhon_server/internal/dao/mysql/repository"
	myredis "bondhon_server/internal/dao/redis"
	"bondhon_server/internal/dto/respond"
	"bondhon_server/internal/model"
	"bondhon_server/pkg/constants"
	"bondhon_server/pkg/enum/profile/profile_status_enum"
	"bondhon_server/pkg/errorx"
)

// conversationService 已接受连接之上的两个只读投影：会话列表与好友列表
// 不落独立的会话表，全部从 connection_request 派生
type conversationService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

func NewConversationService(repos *repository.Repositories, cache myredis.AsyncCacheService) *conversationService {
	return &conversationService{repos: repos, cache: cache}
}

// ListConversations 会话列表，按最近活跃时间降序
// 对方资料缺失时用占位符降级，保证会话本身仍可见
func (s *conversationService) ListConversations(ctx context.Context, memberEmail string) ([]respond.ConversationListRespond, error) {
	cacheKey := "conversation_list_" + memberEmail

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var rsp []respond.ConversationListRespond
		if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
			return rsp, nil
		}
		zap.L().Error("Unmarshal conversation list cache failed", zap.Error(err))
	}

	rowList, err := s.repos.Connection.FindAcceptedByMember(ctx, memberEmail)
	if err != nil {
		zap.L().Error("查询会话列表失败", zap.String("member", memberEmail), zap.Error(err))
		return nil, errorx.ErrUnavailable
	}

	rspList := make([]respond.ConversationListRespond, 0, len(rowList))
	for _, row := range rowList {
		counterpart := row.OtherParty(memberEmail)
		item := respond.ConversationListRespond{
			ConversationId:    row.Uuid,
			CounterpartEmail:  counterpart,
			CounterpartName:   constants.PLACEHOLDER_NAME,
			CounterpartAvatar: constants.PLACEHOLDER_AVATAR,
			LastActivityAt:    lastActivity(&row).Format("2006-01-02 15:04:05"),
		}
		if profile, perr := s.repos.Profile.FindByOwnerEmail(ctx, counterpart); perr == nil {
			item.CounterpartName = profile.DisplayName
			if profile.Avatar != "" {
				item.CounterpartAvatar = profile.Avatar
			}
		}
		// 最新一条消息用于列表预览，没有消息不算错误
		if msg, merr := s.repos.Message.FindLatestByConversationId(ctx, row.Uuid); merr == nil {
			item.LastMessage = msg.Body
			item.LastMessageAt = msg.SentAt.Format("2006-01-02 15:04:05")
		} else if !errorx.IsNotFound(merr) {
			zap.L().Error("查询会话最新消息失败", zap.String("conversation_id", row.Uuid), zap.Error(merr))
		}
		rspList = append(rspList, item)
	}

	// 字符串格式按时间排序是稳定的（固定宽度格式）
	sort.Slice(rspList, func(i, j int) bool {
		return rspList[i].LastActivityAt > rspList[j].LastActivityAt
	})

	s.cache.SubmitTask(func() {
		data, err := json.Marshal(rspList)
		if err != nil {
			zap.L().Error("Marshal conversation list failed", zap.Error(err))
			return
		}
		_ = s.cache.Set(context.Background(), cacheKey, string(data), time.Minute*constants.REDIS_TIMEOUT)
	})

	return rspList, nil
}

// ListFriends 好友列表：只包含资料已审核通过的对方，按建立时间降序
// 与会话列表的区别：资料缺失或未过审直接跳过该条目
func (s *conversationService) ListFriends(ctx context.Context, memberEmail string) ([]respond.FriendListRespond, error) {
	cacheKey := "friend_list_" + memberEmail

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var rsp []respond.FriendListRespond
		if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
			return rsp, nil
		}
		zap.L().Error("Unmarshal friend list cache failed", zap.Error(err))
	}

	rowList, err := s.repos.Connection.FindAcceptedByMember(ctx, memberEmail)
	if err != nil {
		zap.L().Error("查询好友列表失败", zap.String("member", memberEmail), zap.Error(err))
		return nil, errorx.ErrUnavailable
	}

	rspList := make([]respond.FriendListRespond, 0, len(rowList))
	for _, row := range rowList {
		counterpart := row.OtherParty(memberEmail)
		profile, perr := s.repos.Profile.FindByOwnerEmail(ctx, counterpart)
		if perr != nil {
			if !errorx.IsNotFound(perr) {
				zap.L().Error("查询好友资料失败", zap.String("member", counterpart), zap.Error(perr))
			}
			continue
		}
		if profile.Status != profile_status_enum.APPROVED {
			continue
		}
		rspList = append(rspList, respond.FriendListRespond{
			ConversationId:   row.Uuid,
			CounterpartEmail: counterpart,
			Name:             profile.DisplayName,
			Avatar:           profile.Avatar,
			Department:       profile.Department,
			District:         profile.District,
			ConnectedAt:      connectedAt(&row).Format("2006-01-02 15:04:05"),
		})
	}

	sort.Slice(rspList, func(i, j int) bool {
		return rspList[i].ConnectedAt > rspList[j].ConnectedAt
	})

	s.cache.SubmitTask(func() {
		data, err := json.Marshal(rspList)
		if err != nil {
			zap.L().Error("Marshal friend list failed", zap.Error(err))
			return
		}
		_ = s.cache.Set(context.Background(), cacheKey, string(data), time.Minute*constants.REDIS_TIMEOUT)
	})

	return rspList, nil
}

// lastActivity 会话排序键：最后一次消息活动，没有消息则退回状态变更时间
func lastActivity(row *model.ConnectionRequest) time.Time {
	if row.LastActivityAt.Valid {
		return row.LastActivityAt.Time
	}
	if !row.UpdatedAt.IsZero() {
		return row.UpdatedAt
	}
	return row.CreatedAt
}

// connectedAt 连接建立时间：接受请求时会刷新 UpdatedAt
func connectedAt(row *model.ConnectionRequest) time.Time {
	if !row.UpdatedAt.IsZero() {
		return row.UpdatedAt
	}
	return row.CreatedAt
}
