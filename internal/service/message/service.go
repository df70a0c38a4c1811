package message

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"bondhon_server/internal/dao/mysql/repository"
	myredis "bondhon_server/internal/dao/redis"
	"bondhon_server/internal/dto/request"
	"bondhon_server/internal/dto/respond"
	"bondhon_server/internal/model"
	"bondhon_server/pkg/constants"
	"bondhon_server/pkg/enum/connection/connection_status_enum"
	"bondhon_server/pkg/errorx"
	"bondhon_server/pkg/util/snowflake"
)

// messageService 会话内消息的追加日志与已读回执
// 消息只能存在于已接受的连接之上，连接门禁在每次写入时重新校验
type messageService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

func NewMessageService(repos *repository.Repositories, cache myredis.AsyncCacheService) *messageService {
	return &messageService{repos: repos, cache: cache}
}

// SendMessage 向会话追加一条消息
// 落库和刷新会话活跃时间在同一事务里：活跃时间刷新失败说明
// 连接刚被解除，消息一并回滚
func (s *messageService) SendMessage(ctx context.Context, req request.SendMessageRequest) (respond.SendMessageRespond, error) {
	var rsp respond.SendMessageRespond

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return rsp, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}
	if len(body) > constants.MESSAGE_BODY_MAX {
		return rsp, errorx.Newf(errorx.CodeInvalidParam, "消息内容超过 %d 字节上限", constants.MESSAGE_BODY_MAX)
	}

	conv, err := s.fetchActiveConversation(ctx, req.ConversationId)
	if err != nil {
		return rsp, err
	}
	if !conv.IsParty(req.SenderEmail) {
		return rsp, errorx.New(errorx.CodeForbidden, "不是该会话的参与者")
	}

	now := time.Now()
	msg := &model.Message{
		Uuid:           snowflake.GenerateID(),
		ConversationId: conv.Uuid,
		SenderEmail:    req.SenderEmail,
		ReceiverEmail:  conv.OtherParty(req.SenderEmail),
		Body:           body,
		SentAt:         now,
	}

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		rows, terr := txRepos.Connection.TouchLastActivity(ctx, conv.Uuid, now)
		if terr != nil {
			return terr
		}
		if rows == 0 {
			// 连接在校验和写入之间被解除了
			return errorx.New(errorx.CodeNotFound, "会话不存在")
		}
		return txRepos.Message.Create(ctx, msg)
	})
	if err != nil {
		if errorx.IsNotFound(err) {
			return rsp, err
		}
		zap.L().Error("发送消息失败", zap.String("conversation_id", conv.Uuid), zap.Error(err))
		return rsp, errorx.ErrUnavailable
	}

	s.cache.SubmitTask(func() {
		patterns := []string{
			"conversation_list_" + msg.SenderEmail,
			"conversation_list_" + msg.ReceiverEmail,
			"unread_count_" + msg.ReceiverEmail,
		}
		if derr := s.cache.DeleteByPatterns(context.Background(), patterns); derr != nil {
			zap.L().Error("失效消息缓存失败", zap.Error(derr))
		}
	})

	zap.L().Info("消息已发送",
		zap.Int64("message_id", msg.Uuid),
		zap.String("conversation_id", conv.Uuid),
		zap.String("sender", msg.SenderEmail),
	)

	return respond.SendMessageRespond{
		MessageId: strconv.FormatInt(msg.Uuid, 10),
		SentAt:    msg.SentAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// ListMessages 按发送时间升序返回会话内的全部消息
func (s *messageService) ListMessages(ctx context.Context, conversationId string) ([]respond.MessageListRespond, error) {
	if _, err := s.fetchActiveConversation(ctx, conversationId); err != nil {
		return nil, err
	}

	rowList, err := s.repos.Message.FindByConversationId(ctx, conversationId)
	if err != nil {
		zap.L().Error("查询消息列表失败", zap.String("conversation_id", conversationId), zap.Error(err))
		return nil, errorx.ErrUnavailable
	}

	rspList := make([]respond.MessageListRespond, 0, len(rowList))
	for _, row := range rowList {
		item := respond.MessageListRespond{
			MessageId:     strconv.FormatInt(row.Uuid, 10),
			SenderEmail:   row.SenderEmail,
			ReceiverEmail: row.ReceiverEmail,
			Body:          row.Body,
			SentAt:        row.SentAt.Format("2006-01-02 15:04:05"),
			IsRead:        row.IsRead,
		}
		if row.ReadAt.Valid {
			item.ReadAt = row.ReadAt.Time.Format("2006-01-02 15:04:05")
		}
		rspList = append(rspList, item)
	}
	return rspList, nil
}

// MarkRead 把会话内发给读者的未读消息全部置为已读
// 幂等：没有未读消息时返回 0，不报错；会话不存在同样返回 0
func (s *messageService) MarkRead(ctx context.Context, req request.MarkReadRequest) (respond.MarkReadRespond, error) {
	count, err := s.repos.Message.MarkRead(ctx, req.ConversationId, req.ReaderEmail, time.Now())
	if err != nil {
		zap.L().Error("标记已读失败", zap.String("conversation_id", req.ConversationId), zap.Error(err))
		return respond.MarkReadRespond{}, errorx.ErrUnavailable
	}

	if count > 0 {
		s.cache.SubmitTask(func() {
			if derr := s.cache.DeleteByPattern(context.Background(), "unread_count_"+req.ReaderEmail); derr != nil {
				zap.L().Error("失效未读数缓存失败", zap.Error(derr))
			}
		})
	}

	return respond.MarkReadRespond{Count: count}, nil
}

// UnreadCount 某会员所有会话的未读消息总数
func (s *messageService) UnreadCount(ctx context.Context, memberEmail string) (respond.UnreadCountRespond, error) {
	cacheKey := "unread_count_" + memberEmail

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		if count, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
			return respond.UnreadCountRespond{Count: count}, nil
		}
	}

	count, err := s.repos.Message.CountUnreadByReceiver(ctx, memberEmail)
	if err != nil {
		zap.L().Error("查询未读数失败", zap.String("member", memberEmail), zap.Error(err))
		return respond.UnreadCountRespond{}, errorx.ErrUnavailable
	}

	s.cache.SubmitTask(func() {
		_ = s.cache.Set(context.Background(), cacheKey, strconv.FormatInt(count, 10), time.Minute*constants.REDIS_TIMEOUT)
	})

	return respond.UnreadCountRespond{Count: count}, nil
}

// fetchActiveConversation 取出会话底下的连接并校验仍处于已接受状态
// 连接不存在和未接受对外统一表现为会话不存在，不泄露关系细节
func (s *messageService) fetchActiveConversation(ctx context.Context, conversationId string) (*model.ConnectionRequest, error) {
	conv, err := s.repos.Connection.FindByUuid(ctx, conversationId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "会话不存在")
		}
		zap.L().Error("查询会话失败", zap.String("conversation_id", conversationId), zap.Error(err))
		return nil, errorx.ErrUnavailable
	}
	if conv.Status != connection_status_enum.ACCEPTED {
		return nil, errorx.New(errorx.CodeNotFound, "会话不存在")
	}
	return conv, nil
}
