package api

import (
	"dashboard/cache"
	"dashboard/service"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler 发票页面与表单动作
type InvoiceHandler struct {
	invoices  *service.InvoiceService
	customers *service.CustomerService
	actions   *service.Actions
	views     cache.Views
}

// NewInvoiceHandler 创建发票处理器
func NewInvoiceHandler(invoices *service.InvoiceService, customers *service.CustomerService, actions *service.Actions, views cache.Views) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, customers: customers, actions: actions, views: views}
}

// List 发票列表
// @Summary 发票列表
// @Description 按关键字搜索发票（客户名、邮箱、金额、日期、状态），每页 6 条，按日期倒序
// @Tags 发票
// @Produce json
// @Param query query string false "搜索关键字"
// @Param page query int false "页码，从 1 开始"
// @Success 200 {object} Response{data=PageResponse{list=[]service.InvoiceRow}} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /dashboard/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Query("query")
	page := pageParam(c)

	key := cache.Key(service.InvoicesPath, c.Request.URL.RawQuery)
	resp, err := cache.Remember(ctx, h.views, key, func() (PageResponse, error) {
		rows, err := h.invoices.FetchFilteredInvoices(ctx, query, page)
		if err != nil {
			return PageResponse{}, err
		}
		totalPages, err := h.invoices.FetchInvoicesPages(ctx, query)
		if err != nil {
			return PageResponse{}, err
		}
		return PageResponse{Query: query, Page: page, TotalPages: totalPages, List: rows}, nil
	})
	if err != nil {
		PageError(c, err)
		return
	}
	Success(c, resp)
}

// CreatePage 新建发票页面数据
// @Summary 新建发票页面
// @Description 返回可选客户列表
// @Tags 发票
// @Produce json
// @Success 200 {object} Response{data=[]service.CustomerField} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /dashboard/invoices/create [get]
func (h *InvoiceHandler) CreatePage(c *gin.Context) {
	customers, err := h.customers.FetchCustomers(c.Request.Context())
	if err != nil {
		PageError(c, err)
		return
	}
	Success(c, gin.H{"customers": customers})
}

// Create 新建发票
// @Summary 新建发票
// @Description 校验失败返回 422 与字段错误，成功后 303 跳转到发票列表
// @Tags 发票
// @Accept x-www-form-urlencoded
// @Produce json
// @Param customerId formData string true "客户 ID"
// @Param amount formData number true "金额（元）"
// @Param status formData string true "状态" Enums(pending, paid)
// @Success 303 "跳转到 /dashboard/invoices"
// @Failure 422 {object} service.FormState "校验失败"
// @Failure 500 {object} Response "写入失败"
// @Router /dashboard/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	form, ok := bindForm(c)
	if !ok {
		return
	}
	res, err := h.actions.CreateInvoice(c.Request.Context(), form)
	respondAction(c, "create_invoice", res, err)
}

// EditPage 编辑发票页面数据
// @Summary 编辑发票页面
// @Description 返回发票（金额为元）与可选客户列表
// @Tags 发票
// @Produce json
// @Param id path string true "发票 ID"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "发票不存在"
// @Failure 500 {object} Response "查询失败"
// @Router /dashboard/invoices/{id}/edit [get]
func (h *InvoiceHandler) EditPage(c *gin.Context) {
	ctx := c.Request.Context()
	invoice, err := h.invoices.FetchInvoiceByID(ctx, c.Param("id"))
	if err != nil {
		PageError(c, err)
		return
	}
	customers, err := h.customers.FetchCustomers(ctx)
	if err != nil {
		PageError(c, err)
		return
	}
	Success(c, gin.H{"invoice": invoice, "customers": customers})
}

// Update 更新发票
// @Summary 更新发票
// @Description 校验失败返回 422 与字段错误，成功后 303 跳转到发票列表；日期不变
// @Tags 发票
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "发票 ID"
// @Param customerId formData string true "客户 ID"
// @Param amount formData number true "金额（元）"
// @Param status formData string true "状态" Enums(pending, paid)
// @Success 303 "跳转到 /dashboard/invoices"
// @Failure 422 {object} service.FormState "校验失败"
// @Failure 500 {object} Response "写入失败"
// @Router /dashboard/invoices/{id} [post]
func (h *InvoiceHandler) Update(c *gin.Context) {
	form, ok := bindForm(c)
	if !ok {
		return
	}
	res, err := h.actions.UpdateInvoice(c.Request.Context(), c.Param("id"), form)
	respondAction(c, "update_invoice", res, err)
}

// Delete 删除发票
// @Summary 删除发票
// @Tags 发票
// @Param id path string true "发票 ID"
// @Success 303 "跳转到 /dashboard/invoices"
// @Failure 500 {object} Response "删除失败"
// @Router /dashboard/invoices/{id}/delete [post]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	err := h.actions.DeleteInvoice(c.Request.Context(), c.Param("id"))
	respondDelete(c, "delete_invoice", service.InvoicesPath, err)
}

