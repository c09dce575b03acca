package api

import (
	"net/http"
	"time"

	"dashboard/logger"
	"dashboard/middleware"
	"dashboard/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 登录与登出
type AuthHandler struct {
	actions *service.Actions
	ttl     time.Duration
}

// NewAuthHandler 创建认证处理器，ttl 为会话有效期
func NewAuthHandler(actions *service.Actions, ttl time.Duration) *AuthHandler {
	return &AuthHandler{actions: actions, ttl: ttl}
}

// Home 首页
// @Summary 首页
// @Tags 页面
// @Produce json
// @Success 200 {object} Response "获取成功"
// @Router / [get]
func (h *AuthHandler) Home(c *gin.Context) {
	Success(c, gin.H{
		"title": "Acme Dashboard",
		"login": middleware.LoginPath,
	})
}

// LoginPage 登录页面数据
// @Summary 登录页面
// @Tags 认证
// @Produce json
// @Param callbackUrl query string false "登录后跳转地址"
// @Success 200 {object} Response "获取成功"
// @Router /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	Success(c, gin.H{
		"callbackUrl": safeRedirect(c.Query("callbackUrl"), middleware.DashboardPath),
	})
}

// Login 凭据登录
// @Summary 登录
// @Description 邮箱密码登录，成功后写入 HttpOnly 会话 Cookie 并 303 跳转到 redirectTo（默认 /dashboard）
// @Tags 认证
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "邮箱"
// @Param password formData string true "密码"
// @Param redirectTo formData string false "登录后跳转地址"
// @Success 303 "登录成功"
// @Failure 401 {object} Response "Invalid credentials. / Something went wrong."
// @Failure 429 {object} map[string]interface{} "登录过于频繁"
// @Failure 500 {object} Response "服务器错误"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	form, ok := bindForm(c)
	if !ok {
		return
	}

	session, message, err := h.actions.Authenticate(c.Request.Context(), form)
	if err != nil {
		logger.WithComponent("auth").WithError(err).Error("sign in failed")
		InternalError(c, SafeErrorMessage(err, "Something went wrong."))
		return
	}
	if message != "" {
		Unauthorized(c, message)
		return
	}

	setSessionCookie(c, session.Token, h.ttl)

	target := form["redirectTo"]
	if target == "" {
		target = c.Query("callbackUrl")
	}
	c.Redirect(http.StatusSeeOther, safeRedirect(target, middleware.DashboardPath))
}

// Logout 登出
// @Summary 登出
// @Description 清除会话 Cookie 并跳转到登录页
// @Tags 认证
// @Success 303 "跳转到 /login"
// @Router /dashboard/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	setSessionCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
