package connection

import (
	"context"
	"encoding/json"
	"fmt"
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
	"bondhon_server/pkg/util/random"
)

// connectionService 连接请求状态机实现
// 所有状态迁移最终都由存储层的条件写裁决；这里的预检查只为了
// 给调用方更准确的冲突细节，不承担正确性
type connectionService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewConnectionService 构造函数
func NewConnectionService(repos *repository.Repositories, cache myredis.AsyncCacheService) *connectionService {
	return &connectionService{repos: repos, cache: cache}
}

// ProposeConnection 发起连接请求
// 门禁：发起方身份存在且已验证、未封禁；接收方身份存在；
// 两人之间（无论方向）不存在任何请求
func (s *connectionService) ProposeConnection(ctx context.Context, req request.ProposeConnectionRequest) (respond.ProposeConnectionRespond, error) {
	var rsp respond.ProposeConnectionRespond

	// 1. 解析接收方邮箱
	// 从资料浏览页发起时只有资料 ID，先解析回会员邮箱；
	// 身份校验与唯一性检查永远以邮箱为键，不变量定义在会员上而非资料上
	receiverEmail := req.ReceiverEmail
	if receiverEmail == "" {
		if req.ReceiverProfileId == "" {
			return rsp, errorx.New(errorx.CodeInvalidParam, "必须指定接收方邮箱或资料ID")
		}
		profile, err := s.repos.Profile.FindByUuid(ctx, req.ReceiverProfileId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return rsp, errorx.New(errorx.CodeNotFound, "接收方资料不存在")
			}
			zap.L().Error("解析接收方资料失败", zap.String("profile_id", req.ReceiverProfileId), zap.Error(err))
			return rsp, errorx.ErrUnavailable
		}
		receiverEmail = profile.OwnerEmail
	}

	// 2. 不能连接自己
	if req.SenderEmail == receiverEmail {
		return rsp, errorx.New(errorx.CodeInvalidParam, "不能向自己发起连接")
	}

	// 3. 发起方身份门禁
	sender, err := s.repos.Identity.FindByEmail(ctx, req.SenderEmail)
	if err != nil {
		if errorx.IsNotFound(err) {
			return rsp, errorx.New(errorx.CodeUnauthorized, "发起方身份不存在")
		}
		zap.L().Error("查询发起方身份失败", zap.String("sender", req.SenderEmail), zap.Error(err))
		return rsp, errorx.ErrUnavailable
	}
	if !sender.IsVerified || !sender.IsActive {
		return rsp, errorx.New(errorx.CodeUnauthorized, "发起方身份未验证或已被停用")
	}

	// 4. 接收方身份必须存在
	if _, err := s.repos.Identity.FindByEmail(ctx, receiverEmail); err != nil {
		if errorx.IsNotFound(err) {
			return rsp, errorx.New(errorx.CodeNotFound, "接收方会员不存在")
		}
		zap.L().Error("查询接收方身份失败", zap.String("receiver", receiverEmail), zap.Error(err))
		return rsp, errorx.ErrUnavailable
	}

	// 5. 预检查既有关系，给出准确的冲突细节
	if existing, err := s.repos.Connection.FindByPair(ctx, req.SenderEmail, receiverEmail); err == nil {
		return rsp, conflictFor(existing.Status)
	} else if !errorx.IsNotFound(err) {
		zap.L().Error("查询既有关系失败", zap.Error(err))
		return rsp, errorx.ErrUnavailable
	}

	// 6. 插入新请求
	// pair_key 唯一索引是唯一性的最终裁决者：与对方同时发起时
	// 恰好一条插入成功，败者在这里拿到冲突
	row := &model.ConnectionRequest{
		Uuid:          fmt.Sprintf("C%s", random.GetNowAndLenRandomString(11)),
		PairKey:       model.PairKey(req.SenderEmail, receiverEmail),
		SenderEmail:   req.SenderEmail,
		ReceiverEmail: receiverEmail,
		Status:        connection_status_enum.PENDING,
	}
	if err := s.repos.Connection.Create(ctx, row); err != nil {
		if errorx.IsConflict(err) {
			// 输给了并发的对向请求，重新取出存活的那条以区分细节
			if existing, ferr := s.repos.Connection.FindByPair(ctx, req.SenderEmail, receiverEmail); ferr == nil {
				return rsp, conflictFor(existing.Status)
			}
			return rsp, errorx.ErrAlreadyPending
		}
		zap.L().Error("创建连接请求失败", zap.String("pair_key", row.PairKey), zap.Error(err))
		return rsp, errorx.ErrUnavailable
	}

	// 7. 异步失效读侧缓存
	s.invalidateFor(req.SenderEmail, receiverEmail)

	zap.L().Info("连接请求已创建",
		zap.String("request_id", row.Uuid),
		zap.String("sender", req.SenderEmail),
		zap.String("receiver", receiverEmail),
	)

	return respond.ProposeConnectionRespond{
		RequestId:     row.Uuid,
		SenderEmail:   row.SenderEmail,
		ReceiverEmail: row.ReceiverEmail,
		Status:        connection_status_enum.Text(row.Status),
		CreatedAt:     row.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// conflictFor 把既有请求的状态映射为带细节的冲突错误
// 已拒绝按终态处理：该无序对被占用，不允许重新发起
func conflictFor(status int8) error {
	switch status {
	case connection_status_enum.PENDING:
		return errorx.ErrAlreadyPending
	case connection_status_enum.ACCEPTED:
		return errorx.ErrAlreadyConnected
	default:
		return errorx.ErrAlreadyResolved
	}
}

// RespondToConnection 接受或拒绝待处理的请求
// 条件 UPDATE 保证两个并发响应（如双击提交）恰好一个成功一个冲突
func (s *connectionService) RespondToConnection(ctx context.Context, requestId, decision string) error {
	var target int8
	switch decision {
	case "accepted":
		target = connection_status_enum.ACCEPTED
	case "rejected":
		target = connection_status_enum.REJECTED
	default:
		return errorx.Newf(errorx.CodeInvalidParam, "无效的处理决定: %s", decision)
	}

	// 先取出请求拿到双方邮箱（用于缓存失效），再做条件迁移
	row, err := s.repos.Connection.FindByUuid(ctx, requestId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "该连接请求不存在")
		}
		zap.L().Error("查询连接请求失败", zap.String("request_id", requestId), zap.Error(err))
		return errorx.ErrUnavailable
	}

	rows, err := s.repos.Connection.UpdateStatusIfPending(ctx, requestId, target)
	if err != nil {
		zap.L().Error("更新请求状态失败", zap.String("request_id", requestId), zap.Error(err))
		return errorx.ErrUnavailable
	}
	if rows == 0 {
		// 没有命中待处理行：要么已被处理（冲突），要么刚被删除（不存在）
		if _, ferr := s.repos.Connection.FindByUuid(ctx, requestId); errorx.IsNotFound(ferr) {
			return errorx.New(errorx.CodeNotFound, "该连接请求不存在")
		}
		return errorx.ErrAlreadyResolved
	}

	s.invalidateFor(row.SenderEmail, row.ReceiverEmail)

	zap.L().Info("连接请求已处理",
		zap.String("request_id", requestId),
		zap.String("decision", decision),
	)
	return nil
}

// CancelPendingRequest 撤回仍在待处理状态的请求
// 已被接收方处理过的请求不能撤回，返回冲突让调用方改走解除连接
func (s *connectionService) CancelPendingRequest(ctx context.Context, requestId string) error {
	row, err := s.repos.Connection.FindByUuid(ctx, requestId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "该连接请求不存在")
		}
		zap.L().Error("查询连接请求失败", zap.String("request_id", requestId), zap.Error(err))
		return errorx.ErrUnavailable
	}

	rows, err := s.repos.Connection.DeleteIfStatus(ctx, requestId, connection_status_enum.PENDING)
	if err != nil {
		zap.L().Error("撤回连接请求失败", zap.String("request_id", requestId), zap.Error(err))
		return errorx.ErrUnavailable
	}
	if rows == 0 {
		if _, ferr := s.repos.Connection.FindByUuid(ctx, requestId); errorx.IsNotFound(ferr) {
			return errorx.New(errorx.CodeNotFound, "该连接请求不存在")
		}
		return errorx.ErrAlreadyResolved
	}

	s.invalidateFor(row.SenderEmail, row.ReceiverEmail)

	zap.L().Info("连接请求已撤回", zap.String("request_id", requestId))
	return nil
}

// UnfriendConnection 解除已接受的连接
// 双方任意一方都可发起，没有发起者特权；重复解除返回"不存在"而非升级错误
// 消息记录不做级联删除，保留策略由存储层决定
func (s *connectionService) UnfriendConnection(ctx context.Context, req request.UnfriendConnectionRequest) error {
	// 支持按请求 ID 或按双方邮箱定位
	var row *model.ConnectionRequest
	var err error
	switch {
	case req.RequestId != "":
		row, err = s.repos.Connection.FindByUuid(ctx, req.RequestId)
	case req.EmailA != "" && req.EmailB != "":
		row, err = s.repos.Connection.FindByPair(ctx, req.EmailA, req.EmailB)
	default:
		return errorx.New(errorx.CodeInvalidParam, "必须指定请求ID或双方邮箱")
	}
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "连接不存在")
		}
		zap.L().Error("查询连接失败", zap.Error(err))
		return errorx.ErrUnavailable
	}

	rows, err := s.repos.Connection.DeleteIfStatus(ctx, row.Uuid, connection_status_enum.ACCEPTED)
	if err != nil {
		zap.L().Error("解除连接失败", zap.String("request_id", row.Uuid), zap.Error(err))
		return errorx.ErrUnavailable
	}
	if rows == 0 {
		if _, ferr := s.repos.Connection.FindByUuid(ctx, row.Uuid); errorx.IsNotFound(ferr) {
			return errorx.New(errorx.CodeNotFound, "连接不存在")
		}
		return errorx.New(errorx.CodeConflict, "连接尚未建立，不能解除")
	}

	s.invalidateFor(row.SenderEmail, row.ReceiverEmail)

	zap.L().Info("连接已解除",
		zap.String("request_id", row.Uuid),
		zap.String("sender", row.SenderEmail),
		zap.String("receiver", row.ReceiverEmail),
	)
	return nil
}

// FindRelationship 对称查询两人之间的关系状态
// 两个方向查到的是同一条记录，仅 IsInitiator 随视角变化；不存在不算错误
func (s *connectionService) FindRelationship(ctx context.Context, selfEmail, otherEmail string) (respond.RelationshipStatusRespond, error) {
	row, err := s.repos.Connection.FindByPair(ctx, selfEmail, otherEmail)
	if err != nil {
		if errorx.IsNotFound(err) {
			return respond.RelationshipStatusRespond{Exists: false}, nil
		}
		zap.L().Error("查询关系状态失败", zap.Error(err))
		return respond.RelationshipStatusRespond{}, errorx.ErrUnavailable
	}
	return respond.RelationshipStatusRespond{
		Exists:      true,
		RequestId:   row.Uuid,
		Status:      connection_status_enum.Text(row.Status),
		IsInitiator: row.SenderEmail == selfEmail,
	}, nil
}

// ListPendingRequests 查询发给某会员的待处理请求，装配发起方资料
func (s *connectionService) ListPendingRequests(ctx context.Context, memberEmail string) ([]respond.PendingRequestRespond, error) {
	cacheKey := "pending_list_" + memberEmail

	// 1. 尝试读缓存
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var rsp []respond.PendingRequestRespond
		if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
			return rsp, nil
		}
		zap.L().Error("Unmarshal pending list cache failed", zap.Error(err))
	}

	// 2. 查库
	rowList, err := s.repos.Connection.FindPendingByReceiver(ctx, memberEmail)
	if err != nil {
		zap.L().Error("查询待处理请求失败", zap.String("member", memberEmail), zap.Error(err))
		return nil, errorx.ErrUnavailable
	}

	rspList := make([]respond.PendingRequestRespond, 0, len(rowList))
	for _, row := range rowList {
		item := respond.PendingRequestRespond{
			RequestId:    row.Uuid,
			SenderEmail:  row.SenderEmail,
			SenderName:   constants.PLACEHOLDER_NAME,
			SenderAvatar: constants.PLACEHOLDER_AVATAR,
			CreatedAt:    row.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		// 发起方资料缺失只降级该条目，不让整个列表失败
		if profile, perr := s.repos.Profile.FindByOwnerEmail(ctx, row.SenderEmail); perr == nil {
			item.SenderName = profile.DisplayName
			if profile.Avatar != "" {
				item.SenderAvatar = profile.Avatar
			}
		}
		rspList = append(rspList, item)
	}

	// 3. 回写缓存
	s.cache.SubmitTask(func() {
		data, err := json.Marshal(rspList)
		if err != nil {
			zap.L().Error("Marshal pending list failed", zap.Error(err))
			return
		}
		_ = s.cache.Set(context.Background(), cacheKey, string(data), time.Minute*constants.REDIS_TIMEOUT)
	})

	return rspList, nil
}

// invalidateFor 异步失效双方的读侧缓存
// 关系的任何迁移都会改变双方的会话/好友/待处理/统计视图
func (s *connectionService) invalidateFor(emails ...string) {
	s.cache.SubmitTask(func() {
		patterns := make([]string, 0, len(emails)*4)
		for _, email := range emails {
			patterns = append(patterns,
				"conversation_list_"+email,
				"friend_list_"+email,
				"pending_list_"+email,
				"stats_"+email,
			)
		}
		if err := s.cache.DeleteByPatterns(context.Background(), patterns); err != nil {
			zap.L().Error("失效关系缓存失败", zap.Error(err))
		}
	})
}
