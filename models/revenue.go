package models

// Revenue 月度营收，仅由初始化数据写入
type Revenue struct {
	Month   string `json:"month" gorm:"primaryKey;size:4"`
	Revenue int64  `json:"revenue" gorm:"not null"`
}

// TableName 设置表名
func (Revenue) TableName() string {
	return "revenue"
}
