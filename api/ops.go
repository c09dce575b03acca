package api

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"dashboard/config"
	"dashboard/logger"
	"dashboard/metrics"
	"dashboard/middleware"
	"dashboard/service"

	"github.com/gin-gonic/gin"
)

// OpsHandler 初始化、诊断查询与运行环境接口
type OpsHandler struct {
	seeder    *service.Seeder
	dashboard *service.DashboardService
	cfg       *config.Config
}

// NewOpsHandler 创建运维处理器
func NewOpsHandler(seeder *service.Seeder, dashboard *service.DashboardService, cfg *config.Config) *OpsHandler {
	return &OpsHandler{seeder: seeder, dashboard: dashboard, cfg: cfg}
}

// SeedResponse 初始化成功响应
type SeedResponse struct {
	Message string              `json:"message"`
	Counts  *service.SeedCounts `json:"counts"`
}

// SeedErrorResponse 初始化失败响应，stack 仅在非 release 模式返回
type SeedErrorResponse struct {
	Error   string `json:"error"`
	Stack   string `json:"stack,omitempty"`
	Message string `json:"message"`
}

// Seed 写入演示数据
// @Summary 初始化演示数据
// @Description 单个事务内写入用户、客户、发票、营收；重复执行结果相同
// @Tags 运维
// @Produce json
// @Success 200 {object} SeedResponse "初始化成功"
// @Failure 500 {object} SeedErrorResponse "初始化失败"
// @Router /seed [get]
// @Router /seed [post]
func (h *OpsHandler) Seed(c *gin.Context) {
	start := time.Now()
	counts, err := h.seeder.Run(c.Request.Context())
	metrics.RecordSeed(time.Since(start), err == nil)
	if err != nil {
		resp := SeedErrorResponse{
			Error:   SafeErrorMessage(err, "seed transaction failed"),
			Message: "Failed to seed database",
		}
		if !config.IsProduction() {
			resp.Stack = fmt.Sprintf("%+v", err)
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, SeedResponse{Message: "Database seeded successfully", Counts: counts})
}

// Query 诊断查询：金额为 666 的发票
// @Summary 诊断查询
// @Description 返回金额恰为 666（分）的发票及其客户名
// @Tags 运维
// @Produce json
// @Success 200 {array} service.DiagnosticInvoice "查询成功"
// @Failure 500 {object} APIError "查询失败"
// @Router /query [get]
func (h *OpsHandler) Query(c *gin.Context) {
	list, err := h.dashboard.DiagnosticInvoices(c.Request.Context())
	if err != nil {
		logger.WithComponent("api").WithError(err).Error("diagnostic query failed")
		ErrorJSON(c, http.StatusInternalServerError, SafeErrorMessage(err, "query failed"))
		return
	}
	c.JSON(http.StatusOK, list)
}

// DebugEnv 运行环境摘要，不含任何密钥
// @Summary 运行环境
// @Tags 运维
// @Produce json
// @Success 200 {object} map[string]interface{} "运行环境"
// @Router /debug-env [get]
func (h *OpsHandler) DebugEnv(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mode":               h.cfg.Server.Mode,
		"database_driver":    h.cfg.Database.Driver,
		"database_host":      h.cfg.Database.Host,
		"database_name":      h.cfg.Database.DBName,
		"session_configured": middleware.Configured(),
		"cache_enabled":      h.cfg.Cache.Enabled,
		"upload_dir":         h.cfg.Upload.Dir,
		"go_version":         runtime.Version(),
	})
}
