package model

import (
	"gorm.io/gorm"
)

// Profile 会员公开资料（biodata）模型（外部资料服务所有）
// 本引擎只读取展示字段与审核状态；增删改与审核流程在资料服务侧
type Profile struct {
	gorm.Model
	Uuid         string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:资料uuid"`
	OwnerEmail   string `gorm:"column:owner_email;uniqueIndex;type:varchar(255);not null;comment:所属会员邮箱"`
	Status       int8   `gorm:"column:status;not null;comment:审核状态，0.待审核，1.通过，2.未通过"`
	DisplayName  string `gorm:"column:display_name;type:varchar(64);not null;comment:展示昵称"`
	Avatar       string `gorm:"column:avatar;type:varchar(255);comment:头像"`
	Department   string `gorm:"column:department;type:varchar(64);comment:部门/院系"`
	District     string `gorm:"column:district;type:varchar(64);comment:地区"`
}

func (Profile) TableName() string {
	return "profile"
}
