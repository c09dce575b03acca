package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer 客户
type Customer struct {
	ID       string    `json:"id" gorm:"primaryKey;size:36"`
	Name     string    `json:"name" gorm:"size:255;not null"`
	Email    string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	ImageURL *string   `json:"image_url" gorm:"column:image_url;size:255"`
	Invoices []Invoice `json:"-" gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName 设置表名
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate 未指定 ID 时生成 uuid
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
