package service

import (
	"context"
	"math"
	"time"

	"dashboard/models"
	"dashboard/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 列表页路径，写操作成功后失效并跳转
const (
	InvoicesPath  = "/dashboard/invoices"
	CustomersPath = "/dashboard/customers"
)

// Revalidator 使指定路径下已缓存的视图失效
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}

// NopRevalidator 不缓存时使用，每次读取都重新查询
type NopRevalidator struct{}

// Revalidate 空实现
func (NopRevalidator) Revalidate(context.Context, string) {}

// FormState 表单校验失败时回显的错误
type FormState struct {
	Errors  validation.FieldErrors `json:"errors"`
	Message string                 `json:"message"`
}

// ActionResult 写操作结果：State 非空表示校验失败，否则跳转到 Redirect
type ActionResult struct {
	State    *FormState
	Redirect string
}

const invoiceAmountMessage = "Please enter a valid amount."

var invoiceSchema = validation.Schema{
	{Name: "customerId", Tag: "required", Message: "Please select a customer."},
	{Name: "amount", Tag: "gt=0", Number: true, Message: invoiceAmountMessage},
	{Name: "status", Tag: "oneof=pending paid", Message: "Please select an invoice status."},
}

var customerSchema = validation.Schema{
	{Name: "name", Tag: "min=1", Message: "Please enter a valid name."},
	{Name: "email", Tag: "email", Message: "Please enter a valid email."},
	{Name: "image_url", Tag: "min=1", Message: "Please enter a valid image URL."},
}

// Actions 发票与客户的写操作及登录
type Actions struct {
	db          *gorm.DB
	revalidator Revalidator
	auth        *Authenticator
	now         func() time.Time
}

// NewActions 创建写操作服务，revalidator 为空时不做视图失效
func NewActions(db *gorm.DB, revalidator Revalidator, auth *Authenticator) *Actions {
	if revalidator == nil {
		revalidator = NopRevalidator{}
	}
	return &Actions{db: db, revalidator: revalidator, auth: auth, now: time.Now}
}

// ToCents 元转分，四舍五入
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// invoiceCents 换算为分；不足 1 分或超出 int64 范围时返回字段错误
func invoiceCents(amount float64) (int64, validation.FieldErrors) {
	scaled := math.Round(amount * 100)
	if scaled < 1 || scaled >= math.MaxInt64 {
		errs := make(validation.FieldErrors)
		errs.Add("amount", invoiceAmountMessage)
		return 0, errs
	}
	return ToCents(amount), nil
}

// FromCents 分转元
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// CreateInvoice 创建发票，日期为当天
func (a *Actions) CreateInvoice(ctx context.Context, form map[string]string) (*ActionResult, error) {
	values, errs := invoiceSchema.Validate(form)
	if errs != nil {
		return &ActionResult{State: &FormState{Errors: errs, Message: "Missing Fields. Failed to Create Invoice."}}, nil
	}
	cents, errs := invoiceCents(values.Float("amount"))
	if errs != nil {
		return &ActionResult{State: &FormState{Errors: errs, Message: "Missing Fields. Failed to Create Invoice."}}, nil
	}

	invoice := models.Invoice{
		CustomerID: values.String("customerId"),
		Amount:     cents,
		Status:     values.String("status"),
		Date:       datatypes.Date(a.now()),
	}
	if err := a.db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return nil, dbError("CreateInvoice", "Failed to create invoice.", err)
	}

	a.revalidateInvoices(ctx)
	return &ActionResult{Redirect: InvoicesPath}, nil
}

// UpdateInvoice 更新发票，不修改日期
func (a *Actions) UpdateInvoice(ctx context.Context, id string, form map[string]string) (*ActionResult, error) {
	values, errs := invoiceSchema.Validate(form)
	if errs != nil {
		return &ActionResult{State: &FormState{Errors: errs, Message: "Missing Fields. Failed to Edit Invoice."}}, nil
	}
	cents, errs := invoiceCents(values.Float("amount"))
	if errs != nil {
		return &ActionResult{State: &FormState{Errors: errs, Message: "Missing Fields. Failed to Edit Invoice."}}, nil
	}

	err := a.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_id": values.String("customerId"),
			"amount":      cents,
			"status":      values.String("status"),
		}).Error
	if err != nil {
		return nil, dbError("UpdateInvoice", "Failed to update invoice.", err)
	}

	a.revalidateInvoices(ctx)
	return &ActionResult{Redirect: InvoicesPath}, nil
}

// DeleteInvoice 按 ID 删除发票
func (a *Actions) DeleteInvoice(ctx context.Context, id string) error {
	if err := a.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
		return dbError("DeleteInvoice", "Failed to delete invoice.", err)
	}
	a.revalidateInvoices(ctx)
	return nil
}

// CreateCustomer 创建客户
func (a *Actions) CreateCustomer(ctx context.Context, form map[string]string) (*ActionResult, error) {
	values, errs := customerSchema.Validate(form)
	if errs != nil {
		return &ActionResult{State: &FormState{Errors: errs, Message: "Missing Fields. Failed to Create Customer."}}, nil
	}

	imageURL := values.String("image_url")
	customer := models.Customer{
		Name:     values.String("name"),
		Email:    values.String("email"),
		ImageURL: &imageURL,
	}
	if err := a.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, dbError("CreateCustomer", "Failed to create customer.", err)
	}

	a.revalidator.Revalidate(ctx, CustomersPath)
	return &ActionResult{Redirect: CustomersPath}, nil
}

// UpdateCustomer 更新客户
func (a *Actions) UpdateCustomer(ctx context.Context, id string, form map[string]string) (*ActionResult, error) {
	values, errs := customerSchema.Validate(form)
	if errs != nil {
		return &ActionResult{State: &FormState{Errors: errs, Message: "Missing Fields. Failed to Edit Customer."}}, nil
	}

	err := a.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":      values.String("name"),
			"email":     values.String("email"),
			"image_url": values.String("image_url"),
		}).Error
	if err != nil {
		return nil, dbError("UpdateCustomer", "Failed to update customer.", err)
	}

	// 发票列表展示客户名称、邮箱与头像
	a.revalidator.Revalidate(ctx, CustomersPath)
	a.revalidator.Revalidate(ctx, InvoicesPath)
	return &ActionResult{Redirect: CustomersPath}, nil
}

// DeleteCustomer 按 ID 删除客户，关联发票由外键级联处理
func (a *Actions) DeleteCustomer(ctx context.Context, id string) error {
	if err := a.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{}).Error; err != nil {
		return dbError("DeleteCustomer", "Failed to delete customer.", err)
	}
	a.revalidator.Revalidate(ctx, CustomersPath)
	// 客户被删除后发票列表也随之变化
	a.revalidator.Revalidate(ctx, InvoicesPath)
	return nil
}

// revalidateInvoices 发票变化同时影响客户表中的汇总金额
func (a *Actions) revalidateInvoices(ctx context.Context) {
	a.revalidator.Revalidate(ctx, InvoicesPath)
	a.revalidator.Revalidate(ctx, CustomersPath)
}
