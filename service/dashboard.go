package service

import (
	"context"
	"sort"

	"dashboard/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// LatestInvoice 最新发票卡片
type LatestInvoice struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	ImageURL *string `json:"image_url"`
	Amount   string  `json:"amount"`
}

// CardData 概览卡片数据
type CardData struct {
	NumberOfCustomers    int64  `json:"number_of_customers"`
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}

// DiagnosticInvoice /query 接口返回项
type DiagnosticInvoice struct {
	Amount int64  `json:"amount"`
	Name   string `json:"name"`
}

// DiagnosticAmount /query 接口固定筛选的金额（分）
const DiagnosticAmount = 666

var monthOrder = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// DashboardService 概览页查询
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService 创建概览查询服务
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// FetchRevenue 月度营收，按自然月排序
func (s *DashboardService) FetchRevenue(ctx context.Context) ([]models.Revenue, error) {
	var list []models.Revenue
	if err := s.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, dbError("FetchRevenue", "Failed to fetch revenue data.", err)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return monthOrder[list[i].Month] < monthOrder[list[j].Month]
	})
	return list, nil
}

// FetchLatestInvoices 最近 5 张发票
func (s *DashboardService) FetchLatestInvoices(ctx context.Context) ([]LatestInvoice, error) {
	var rows []struct {
		ID       string
		Name     string
		Email    string
		ImageURL *string
		Amount   int64
	}
	err := s.db.WithContext(ctx).
		Table("invoices").
		Select("invoices.id, invoices.amount, customers.name, customers.email, customers.image_url").
		Joins("JOIN customers ON invoices.customer_id = customers.id").
		Order("invoices.date DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return nil, dbError("FetchLatestInvoices", "Failed to fetch the latest invoices.", err)
	}

	list := make([]LatestInvoice, 0, len(rows))
	for _, r := range rows {
		list = append(list, LatestInvoice{
			ID:       r.ID,
			Name:     r.Name,
			Email:    r.Email,
			ImageURL: r.ImageURL,
			Amount:   FormatCurrency(r.Amount),
		})
	}
	return list, nil
}

// FetchCardData 发票数、客户数及按状态汇总金额，三个查询并发执行
func (s *DashboardService) FetchCardData(ctx context.Context) (*CardData, error) {
	var (
		invoiceCount, customerCount int64
		stats                       []struct {
			Status string
			Total  *int64
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Invoice{}).Count(&invoiceCount).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Customer{}).Count(&customerCount).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Model(&models.Invoice{}).
			Select("status, SUM(amount) AS total").
			Group("status").
			Scan(&stats).Error
	})
	if err := g.Wait(); err != nil {
		return nil, dbError("FetchCardData", "Failed to fetch card data.", err)
	}

	var paid, pending int64
	for _, st := range stats {
		switch st.Status {
		case models.InvoiceStatusPaid:
			paid = valueOrZero(st.Total)
		case models.InvoiceStatusPending:
			pending = valueOrZero(st.Total)
		}
	}

	return &CardData{
		NumberOfCustomers:    customerCount,
		NumberOfInvoices:     invoiceCount,
		TotalPaidInvoices:    FormatCurrency(paid),
		TotalPendingInvoices: FormatCurrency(pending),
	}, nil
}

// DiagnosticInvoices 金额恰为 666 分的发票，错误原样返回
func (s *DashboardService) DiagnosticInvoices(ctx context.Context) ([]DiagnosticInvoice, error) {
	list := make([]DiagnosticInvoice, 0)
	err := s.db.WithContext(ctx).
		Table("invoices").
		Select("invoices.amount, customers.name").
		Joins("JOIN customers ON invoices.customer_id = customers.id").
		Where("invoices.amount = ?", DiagnosticAmount).
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
