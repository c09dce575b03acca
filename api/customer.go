package api

import (
	"dashboard/cache"
	"dashboard/service"

	"github.com/gin-gonic/gin"
)

// CustomerHandler 客户页面与表单动作
type CustomerHandler struct {
	customers *service.CustomerService
	actions   *service.Actions
	views     cache.Views
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(customers *service.CustomerService, actions *service.Actions, views cache.Views) *CustomerHandler {
	return &CustomerHandler{customers: customers, actions: actions, views: views}
}

// List 客户列表
// @Summary 客户列表
// @Description 按名称或邮箱搜索客户，附带发票数、待付与已付汇总，每页 6 条
// @Tags 客户
// @Produce json
// @Param query query string false "搜索关键字"
// @Param page query int false "页码，从 1 开始"
// @Success 200 {object} Response{data=PageResponse{list=[]service.CustomerTableRow}} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /dashboard/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Query("query")
	page := pageParam(c)

	key := cache.Key(service.CustomersPath, c.Request.URL.RawQuery)
	resp, err := cache.Remember(ctx, h.views, key, func() (PageResponse, error) {
		rows, err := h.customers.FetchFilteredCustomers(ctx, query, page)
		if err != nil {
			return PageResponse{}, err
		}
		totalPages, err := h.customers.FetchCustomersPages(ctx, query)
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

// Create 新建客户
// @Summary 新建客户
// @Description 校验失败返回 422 与字段错误，成功后 303 跳转到客户列表
// @Tags 客户
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name formData string true "名称"
// @Param email formData string true "邮箱"
// @Param image_url formData string true "头像地址"
// @Success 303 "跳转到 /dashboard/customers"
// @Failure 422 {object} service.FormState "校验失败"
// @Failure 500 {object} Response "写入失败"
// @Router /dashboard/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	form, ok := bindForm(c)
	if !ok {
		return
	}
	res, err := h.actions.CreateCustomer(c.Request.Context(), form)
	respondAction(c, "create_customer", res, err)
}

// EditPage 编辑客户页面数据
// @Summary 编辑客户页面
// @Tags 客户
// @Produce json
// @Param id path string true "客户 ID"
// @Success 200 {object} Response{data=service.CustomerForm} "获取成功"
// @Failure 404 {object} Response "客户不存在"
// @Failure 500 {object} Response "查询失败"
// @Router /dashboard/customers/{id}/edit [get]
func (h *CustomerHandler) EditPage(c *gin.Context) {
	customer, err := h.customers.FetchCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		PageError(c, err)
		return
	}
	Success(c, customer)
}

// Update 更新客户
// @Summary 更新客户
// @Description 校验失败返回 422 与字段错误，成功后 303 跳转到客户列表
// @Tags 客户
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "客户 ID"
// @Param name formData string true "名称"
// @Param email formData string true "邮箱"
// @Param image_url formData string true "头像地址"
// @Success 303 "跳转到 /dashboard/customers"
// @Failure 422 {object} service.FormState "校验失败"
// @Failure 500 {object} Response "写入失败"
// @Router /dashboard/customers/{id} [post]
func (h *CustomerHandler) Update(c *gin.Context) {
	form, ok := bindForm(c)
	if !ok {
		return
	}
	res, err := h.actions.UpdateCustomer(c.Request.Context(), c.Param("id"), form)
	respondAction(c, "update_customer", res, err)
}

// Delete 删除客户，其发票一并删除
// @Summary 删除客户
// @Tags 客户
// @Param id path string true "客户 ID"
// @Success 303 "跳转到 /dashboard/customers"
// @Failure 500 {object} Response "删除失败"
// @Router /dashboard/customers/{id}/delete [post]
func (h *CustomerHandler) Delete(c *gin.Context) {
	err := h.actions.DeleteCustomer(c.Request.Context(), c.Param("id"))
	respondDelete(c, "delete_customer", service.CustomersPath, err)
}
