package service

import (
	"context"
	"errors"
	"fmt"

	"dashboard/database"
	"dashboard/models"

	"gorm.io/gorm"
)

// ItemsPerPage 列表每页条数
const ItemsPerPage = 6

// InvoiceRow 发票列表行（含客户展示字段）
type InvoiceRow struct {
	ID              string  `json:"id"`
	CustomerID      string  `json:"customer_id"`
	Amount          int64   `json:"amount"`
	FormattedAmount string  `json:"formatted_amount" gorm:"-"`
	Date            string  `json:"date"`
	Status          string  `json:"status"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	ImageURL        *string `json:"image_url"`
}

// InvoiceForm 编辑表单回显数据，Amount 为元
type InvoiceForm struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// InvoiceService 发票查询
type InvoiceService struct {
	db      *gorm.DB
	dialect database.Dialect
}

// NewInvoiceService 创建发票查询服务
func NewInvoiceService(db *gorm.DB, dialect database.Dialect) *InvoiceService {
	return &InvoiceService{db: db, dialect: dialect}
}

// matching 发票 JOIN 客户，并按关键字过滤
func (s *InvoiceService) matching(ctx context.Context, query string) *gorm.DB {
	tx := s.db.WithContext(ctx).
		Table("invoices").
		Joins("JOIN customers ON invoices.customer_id = customers.id")
	if query == "" {
		return tx
	}
	cond, n := s.dialect.AnyILike(
		"customers.name",
		"customers.email",
		s.dialect.Text("invoices.amount"),
		s.dialect.Text("invoices.date"),
		"invoices.status",
	)
	return tx.Where(cond, repeatArg(database.ContainsPattern(query), n)...)
}

func (s *InvoiceService) rows(ctx context.Context, query string) *gorm.DB {
	return s.matching(ctx, query).
		Select("invoices.id, invoices.customer_id, invoices.amount, " +
			s.dialect.Text("invoices.date") + " AS date, invoices.status, " +
			"customers.name, customers.email, customers.image_url").
		Order("invoices.date DESC").
		Order("invoices.id ASC")
}

// FetchFilteredInvoices 分页查询发票，query 为空时按日期倒序列出全部
func (s *InvoiceService) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]InvoiceRow, error) {
	var rows []InvoiceRow
	err := s.rows(ctx, query).
		Limit(ItemsPerPage).
		Offset(pageOffset(page)).
		Scan(&rows).Error
	if err != nil {
		return nil, dbError("FetchFilteredInvoices", "Failed to fetch invoices.", err)
	}
	formatAmounts(rows)
	return rows, nil
}

// ExportInvoices 导出全部匹配发票，排序与列表页一致
func (s *InvoiceService) ExportInvoices(ctx context.Context, query string) ([]InvoiceRow, error) {
	var rows []InvoiceRow
	if err := s.rows(ctx, query).Scan(&rows).Error; err != nil {
		return nil, dbError("ExportInvoices", "Failed to export invoices.", err)
	}
	formatAmounts(rows)
	return rows, nil
}

func formatAmounts(rows []InvoiceRow) {
	for i := range rows {
		rows[i].FormattedAmount = FormatCurrency(rows[i].Amount)
	}
}

// FetchInvoicesPages 匹配结果总页数
func (s *InvoiceService) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	var count int64
	var err error
	if query == "" {
		err = s.db.WithContext(ctx).Model(&models.Invoice{}).Count(&count).Error
	} else {
		err = s.matching(ctx, query).Count(&count).Error
	}
	if err != nil {
		return 0, dbError("FetchInvoicesPages", "Failed to fetch total number of invoices.", err)
	}
	return TotalPages(count), nil
}

// FetchInvoiceByID 按 ID 查询发票，金额换算为元
func (s *InvoiceService) FetchInvoiceByID(ctx context.Context, id string) (*InvoiceForm, error) {
	var inv models.Invoice
	err := s.db.WithContext(ctx).
		Select("id", "customer_id", "amount", "status").
		Where("id = ?", id).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = fmt.Errorf("invoice %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, dbError("FetchInvoiceByID", "Failed to fetch invoice.", err)
	}
	return &InvoiceForm{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     FromCents(inv.Amount),
		Status:     inv.Status,
	}, nil
}

// TotalPages ceil(count / ItemsPerPage)
func TotalPages(count int64) int {
	if count <= 0 {
		return 0
	}
	return int((count + ItemsPerPage - 1) / ItemsPerPage)
}

func pageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * ItemsPerPage
}

func repeatArg(arg interface{}, n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = arg
	}
	return args
}
