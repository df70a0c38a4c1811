package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bondhon_server/internal/model"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 追加一条消息
func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}

// FindByConversationId 按会话查找全部消息
// 发送时间升序，这是整个引擎里唯一要求升序的地方（聊天记录展示顺序）
func (r *messageRepository) FindByConversationId(ctx context.Context, conversationId string) ([]model.Message, error) {
	var messages []model.Message
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("conversation_id = ?", conversationId).
			Order("sent_at ASC").
			Find(&messages).Error
	})
	if err != nil {
		return nil, wrapDBErrorf(err, "查询消息 conversation_id=%s", conversationId)
	}
	return messages, nil
}

// FindLatestByConversationId 查找会话内最新一条消息
func (r *messageRepository) FindLatestByConversationId(ctx context.Context, conversationId string) (*model.Message, error) {
	var message model.Message
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("conversation_id = ?", conversationId).
			Order("sent_at DESC").
			First(&message).Error
	})
	if err != nil {
		return nil, wrapDBErrorf(err, "查询最新消息 conversation_id=%s", conversationId)
	}
	return &message, nil
}

// MarkRead 将会话内发给 reader 且未读的消息全部置为已读
// 单条条件 UPDATE，天然幂等：第二次调用影响行数为 0
func (r *messageRepository) MarkRead(ctx context.Context, conversationId, readerEmail string, readAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND receiver_email = ? AND is_read = ?", conversationId, readerEmail, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "标记已读 conversation_id=%s reader=%s", conversationId, readerEmail)
	}
	return res.RowsAffected, nil
}

// CountUnreadByReceiver 统计发给某会员且未读的消息总数
// 跨全部会话的全局角标计数
func (r *messageRepository) CountUnreadByReceiver(ctx context.Context, email string) (int64, error) {
	var count int64
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Model(&model.Message{}).
			Where("receiver_email = ? AND is_read = ?", email, false).
			Count(&count).Error
	})
	if err != nil {
		return 0, wrapDBErrorf(err, "统计未读消息 email=%s", email)
	}
	return count, nil
}
