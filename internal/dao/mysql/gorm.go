// Package dao 提供数据访问层的初始化和全局数据库实例管理
// 负责建立 MySQL 连接、自动迁移表结构、初始化 Repository 层
package dao

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"bondhon_server/internal/config"
	"bondhon_server/internal/dao/mysql/repository"
	"bondhon_server/internal/model"
)

// GormDB 全局 GORM 数据库实例
var GormDB *gorm.DB

// Repos 全局 Repository 实例集合
// 聚合所有 Repository，供 Service 层通过依赖注入使用
var Repos *repository.Repositories

// Init 初始化数据库连接和 Repository 层
// 执行步骤：
//  1. 从配置读取 MySQL 连接信息
//  2. 构建 DSN（Data Source Name）连接字符串
//  3. 使用 GORM 建立数据库连接
//  4. 执行 AutoMigrate 自动迁移表结构
//  5. 初始化全局 Repository 实例
func Init() {
	conf := config.GetConfig()

	// 构建 MySQL DSN 连接字符串
	// 格式：user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	// TranslateError 让方言层把重复键错误翻译成 gorm.ErrDuplicatedKey，
	// pair_key 唯一索引的并发裁决依赖这一点
	var err error
	GormDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	// AutoMigrate 自动迁移表结构
	// member_identity 和 profile 两张表归外部服务所有，
	// 这里一并迁移只是为了单机开发环境开箱即用
	err = GormDB.AutoMigrate(
		&model.MemberIdentity{},    // 会员身份表（外部所有，只读）
		&model.Profile{},           // 会员资料表（外部所有，只读）
		&model.ConnectionRequest{}, // 连接请求表
		&model.Message{},           // 消息表
	)
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	// 初始化全局 Repository 实例集合
	Repos = repository.NewRepositories(GormDB)
}
