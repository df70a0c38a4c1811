// Package repository 提供数据访问层的具体实现
// 本文件实现身份/资料目录的只读查询
// 这两张表由外部身份服务和资料服务写入，本引擎只在门禁检查和视图装配时读取
package repository

import (
	"context"

	"gorm.io/gorm"

	"bondhon_server/internal/model"
)

// identityRepository IdentityRepository 接口的实现
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository 创建 IdentityRepository 实例
func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

// FindByEmail 根据邮箱查找会员身份
func (r *identityRepository) FindByEmail(ctx context.Context, email string) (*model.MemberIdentity, error) {
	var identity model.MemberIdentity
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).First(&identity, "email = ?", email).Error
	})
	if err != nil {
		return nil, wrapDBErrorf(err, "查询会员身份 email=%s", email)
	}
	return &identity, nil
}

// profileRepository ProfileRepository 接口的实现
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建 ProfileRepository 实例
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByOwnerEmail 根据所属会员邮箱查找资料
func (r *profileRepository) FindByOwnerEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).First(&profile, "owner_email = ?", email).Error
	})
	if err != nil {
		return nil, wrapDBErrorf(err, "查询会员资料 owner_email=%s", email)
	}
	return &profile, nil
}

// FindByUuid 根据资料 UUID 查找资料
// 发起连接时允许用资料 ID 指定接收方，这里负责把它解析回会员邮箱
func (r *profileRepository) FindByUuid(ctx context.Context, uuid string) (*model.Profile, error) {
	var profile model.Profile
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).First(&profile, "uuid = ?", uuid).Error
	})
	if err != nil {
		return nil, wrapDBErrorf(err, "查询会员资料 uuid=%s", uuid)
	}
	return &profile, nil
}
