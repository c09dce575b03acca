package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 发票状态
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// InvoiceStatuses 全部合法状态
func InvoiceStatuses() []string {
	return []string{InvoiceStatusPending, InvoiceStatusPaid}
}

// Invoice 发票，金额以分为单位存储
type Invoice struct {
	ID         string         `json:"id" gorm:"primaryKey;size:36"`
	CustomerID string         `json:"customer_id" gorm:"size:36;not null;index"`
	Amount     int64          `json:"amount" gorm:"not null"`
	Status     string         `json:"status" gorm:"size:20;not null;index"`
	Date       datatypes.Date `json:"date" gorm:"not null;index"`
}

// TableName 设置表名
func (Invoice) TableName() string {
	return "invoices"
}

// BeforeCreate 未指定 ID 时生成 uuid
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
