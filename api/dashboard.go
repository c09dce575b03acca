package api

import (
	"dashboard/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 概览页
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler 创建概览处理器
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview 概览数据
// @Summary 概览
// @Description 卡片汇总、月度营收与最新 5 张发票
// @Tags 概览
// @Produce json
// @Success 200 {object} Response "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	cards, err := h.dashboard.FetchCardData(ctx)
	if err != nil {
		PageError(c, err)
		return
	}
	revenue, err := h.dashboard.FetchRevenue(ctx)
	if err != nil {
		PageError(c, err)
		return
	}
	latest, err := h.dashboard.FetchLatestInvoices(ctx)
	if err != nil {
		PageError(c, err)
		return
	}

	Success(c, gin.H{
		"cards":           cards,
		"revenue":         revenue,
		"latest_invoices": latest,
	})
}
