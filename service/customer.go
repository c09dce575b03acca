package service

import (
	"context"
	"errors"
	"fmt"

	"dashboard/database"
	"dashboard/models"

	"gorm.io/gorm"
)

// CustomerField 下拉选择用的客户
type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerTableRow 客户表格行，含发票汇总
type CustomerTableRow struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	ImageURL      *string `json:"image_url"`
	TotalInvoices int64   `json:"total_invoices"`
	TotalPending  string  `json:"total_pending"`
	TotalPaid     string  `json:"total_paid"`
}

// CustomerForm 客户编辑表单回显数据
type CustomerForm struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	ImageURL *string `json:"image_url"`
}

type customerAggregate struct {
	ID            string
	Name          string
	Email         string
	ImageURL      *string
	TotalInvoices int64
	TotalPending  *int64
	TotalPaid     *int64
}

// CustomerService 客户查询
type CustomerService struct {
	db      *gorm.DB
	dialect database.Dialect
}

// NewCustomerService 创建客户查询服务
func NewCustomerService(db *gorm.DB, dialect database.Dialect) *CustomerService {
	return &CustomerService{db: db, dialect: dialect}
}

func (s *CustomerService) filter(tx *gorm.DB, query string) *gorm.DB {
	if query == "" {
		return tx
	}
	cond, n := s.dialect.AnyILike("customers.name", "customers.email")
	return tx.Where(cond, repeatArg(database.ContainsPattern(query), n)...)
}

// FetchCustomers 全部客户（按名称升序）
func (s *CustomerService) FetchCustomers(ctx context.Context) ([]CustomerField, error) {
	var list []CustomerField
	err := s.db.WithContext(ctx).
		Model(&models.Customer{}).
		Select("id", "name").
		Order("name ASC").
		Scan(&list).Error
	if err != nil {
		return nil, dbError("FetchCustomers", "Failed to fetch all customers.", err)
	}
	return list, nil
}

// FetchFilteredCustomers 分页查询客户，并汇总发票数、待付与已付金额
func (s *CustomerService) FetchFilteredCustomers(ctx context.Context, query string, page int) ([]CustomerTableRow, error) {
	tx := s.db.WithContext(ctx).
		Table("customers").
		Select("customers.id, customers.name, customers.email, customers.image_url, " +
			"COUNT(invoices.id) AS total_invoices, " +
			"SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END) AS total_pending, " +
			"SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END) AS total_paid").
		Joins("LEFT JOIN invoices ON customers.id = invoices.customer_id")

	var aggs []customerAggregate
	err := s.filter(tx, query).
		Group("customers.id, customers.name, customers.email, customers.image_url").
		Order("customers.name ASC").
		Order("customers.id ASC").
		Limit(ItemsPerPage).
		Offset(pageOffset(page)).
		Scan(&aggs).Error
	if err != nil {
		return nil, dbError("FetchFilteredCustomers", "Failed to fetch customer table.", err)
	}

	rows := make([]CustomerTableRow, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, CustomerTableRow{
			ID:            a.ID,
			Name:          a.Name,
			Email:         a.Email,
			ImageURL:      a.ImageURL,
			TotalInvoices: a.TotalInvoices,
			TotalPending:  FormatCurrency(valueOrZero(a.TotalPending)),
			TotalPaid:     FormatCurrency(valueOrZero(a.TotalPaid)),
		})
	}
	return rows, nil
}

// FetchCustomersPages 匹配客户总页数
func (s *CustomerService) FetchCustomersPages(ctx context.Context, query string) (int, error) {
	var count int64
	tx := s.db.WithContext(ctx).Model(&models.Customer{})
	if err := s.filter(tx, query).Count(&count).Error; err != nil {
		return 0, dbError("FetchCustomersPages", "Failed to fetch total number of customers.", err)
	}
	return TotalPages(count), nil
}

// FetchCustomerByID 按 ID 查询客户
func (s *CustomerService) FetchCustomerByID(ctx context.Context, id string) (*CustomerForm, error) {
	var c models.Customer
	err := s.db.WithContext(ctx).
		Select("id", "name", "email", "image_url").
		Where("id = ?", id).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, dbError("FetchCustomerByID", "Failed to fetch customer.", err)
	}
	return &CustomerForm{ID: c.ID, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL}, nil
}

func valueOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
