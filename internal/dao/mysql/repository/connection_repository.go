// Package repository 提供数据访问层的具体实现
// 本文件实现 ConnectionRepository 接口，处理连接请求相关的数据库操作
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bondhon_server/internal/model"
	"bondhon_server/pkg/enum/connection/connection_status_enum"
)

// connectionRepository ConnectionRepository 接口的实现
type connectionRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewConnectionRepository 创建 ConnectionRepository 实例
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// FindByUuid 根据 UUID 查找连接请求
func (r *connectionRepository) FindByUuid(ctx context.Context, uuid string) (*model.ConnectionRequest, error) {
	var req model.ConnectionRequest
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).First(&req, "uuid = ?", uuid).Error
	})
	if err != nil {
		return nil, wrapDBErrorf(err, "查询连接请求 uuid=%s", uuid)
	}
	return &req, nil
}

// FindByPair 按无序对查找两人之间的请求
// 通过 pair_key 查询，天然覆盖两个方向
func (r *connectionRepository) FindByPair(ctx context.Context, emailA, emailB string) (*model.ConnectionRequest, error) {
	var req model.ConnectionRequest
	pairKey := model.PairKey(emailA, emailB)
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).First(&req, "pair_key = ?", pairKey).Error
	})
	if err != nil {
		return nil, wrapDBErrorf(err, "查询连接请求 pair_key=%s", pairKey)
	}
	return &req, nil
}

// FindAcceptedByMember 查找某会员参与的全部已接受连接
func (r *connectionRepository) FindAcceptedByMember(ctx context.Context, email string) ([]model.ConnectionRequest, error) {
	var reqs []model.ConnectionRequest
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("(sender_email = ? OR receiver_email = ?) AND status = ?",
				email, email, connection_status_enum.ACCEPTED).
			Find(&reqs).Error
	})
	if err != nil {
		return nil, wrapDBErrorf(err, "查询已接受连接 email=%s", email)
	}
	return reqs, nil
}

// FindPendingByReceiver 查找发给某会员的全部待处理请求
func (r *connectionRepository) FindPendingByReceiver(ctx context.Context, email string) ([]model.ConnectionRequest, error) {
	var reqs []model.ConnectionRequest
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("receiver_email = ? AND status = ?", email, connection_status_enum.PENDING).
			Order("created_at DESC").
			Find(&reqs).Error
	})
	if err != nil {
		return nil, wrapDBErrorf(err, "查询待处理请求 email=%s", email)
	}
	return reqs, nil
}

// Create 创建新请求
// pair_key 唯一索引在这里把唯一性检查与插入原子合并：
// 两端同时发起时恰好一条成功，另一条收到重复键错误并映射为 CodeConflict
func (r *connectionRepository) Create(ctx context.Context, req *model.ConnectionRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return wrapDBErrorf(err, "创建连接请求 pair_key=%s", req.PairKey)
	}
	return nil
}

// UpdateStatusIfPending 仅当当前状态仍为待处理时更新状态
// 条件 UPDATE：影响行数为 0 表示请求不存在或已被处理，由调用方区分
func (r *connectionRepository) UpdateStatusIfPending(ctx context.Context, uuid string, status int8) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.ConnectionRequest{}).
		Where("uuid = ? AND status = ?", uuid, connection_status_enum.PENDING).
		Update("status", status)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "更新请求状态 uuid=%s", uuid)
	}
	return res.RowsAffected, nil
}

// DeleteIfStatus 仅当当前状态符合预期时物理删除
// 取消（待处理）与解除连接（已接受）都走这里
// 物理删除（Unscoped）释放 pair_key，两人之后可以重新发起
func (r *connectionRepository) DeleteIfStatus(ctx context.Context, uuid string, expected int8) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("uuid = ? AND status = ?", uuid, expected).
		Delete(&model.ConnectionRequest{})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "删除连接请求 uuid=%s", uuid)
	}
	return res.RowsAffected, nil
}

// TouchLastActivity 仅当连接仍为已接受时刷新最近消息时间
// UpdateColumn 跳过 gorm 的钩子，不触碰 updated_at：
// updated_at 只在响应请求时变化，好友列表按它排连接建立时间
func (r *connectionRepository) TouchLastActivity(ctx context.Context, uuid string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.ConnectionRequest{}).
		Where("uuid = ? AND status = ?", uuid, connection_status_enum.ACCEPTED).
		UpdateColumn("last_activity_at", at)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "刷新会话活跃时间 uuid=%s", uuid)
	}
	return res.RowsAffected, nil
}

// CountBySender 统计某会员发出的请求数
func (r *connectionRepository) CountBySender(ctx context.Context, email string) (int64, error) {
	var count int64
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Model(&model.ConnectionRequest{}).
			Where("sender_email = ?", email).
			Count(&count).Error
	})
	if err != nil {
		return 0, wrapDBErrorf(err, "统计发出请求 email=%s", email)
	}
	return count, nil
}

// CountByReceiver 统计某会员收到的请求数
func (r *connectionRepository) CountByReceiver(ctx context.Context, email string) (int64, error) {
	var count int64
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Model(&model.ConnectionRequest{}).
			Where("receiver_email = ?", email).
			Count(&count).Error
	})
	if err != nil {
		return 0, wrapDBErrorf(err, "统计收到请求 email=%s", email)
	}
	return count, nil
}

// CountAcceptedByMember 统计某会员参与的已接受连接数（双向）
// 与会话列表走同一个查询形状，保证两者数值一致
func (r *connectionRepository) CountAcceptedByMember(ctx context.Context, email string) (int64, error) {
	var count int64
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Model(&model.ConnectionRequest{}).
			Where("(sender_email = ? OR receiver_email = ?) AND status = ?",
				email, email, connection_status_enum.ACCEPTED).
			Count(&count).Error
	})
	if err != nil {
		return 0, wrapDBErrorf(err, "统计已接受连接 email=%s", email)
	}
	return count, nil
}
