// Package repository 提供 Repository 层聚合与构造
package repository

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db         *gorm.DB             // GORM 数据库实例
	Connection ConnectionRepository // 连接请求 Repository
	Message    MessageRepository    // 消息 Repository
	Identity   IdentityRepository   // 会员身份只读 Repository
	Profile    ProfileRepository    // 会员资料只读 Repository
}

// NewRepositories 创建所有 Repository 实例
// 接收 GORM 数据库实例，初始化并返回 Repositories 聚合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		Connection: NewConnectionRepository(db),
		Message:    NewMessageRepository(db),
		Identity:   NewIdentityRepository(db),
		Profile:    NewProfileRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn: 事务执行函数，接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
