package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 后台登录用户，密码只保存 bcrypt 哈希
type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	Name     string `json:"name" gorm:"size:255;not null"`
	Email    string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}

// BeforeCreate 未指定 ID 时生成 uuid
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
