package api

import (
	"errors"
	"net/http"

	"dashboard/service"

	"github.com/gin-gonic/gin"
)

// BoundaryMessage 页面加载失败时的统一提示
const BoundaryMessage = "Something went wrong!"

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	Query      string      `json:"query"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	List       interface{} `json:"list"`
}

// APIError /api 与运维接口的错误结构
type APIError struct {
	Error string `json:"error"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// PageError 页面数据加载失败：不存在返回 404，其余返回 500 与统一提示
func PageError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c, err.Error())
		return
	}
	c.JSON(http.StatusInternalServerError, Response{
		Code:    http.StatusInternalServerError,
		Message: BoundaryMessage,
		Data:    gin.H{"error": err.Error()},
	})
}

// ActionResponse 表单动作结果：校验失败返回 422 与字段错误，成功 303 跳转
func ActionResponse(c *gin.Context, res *service.ActionResult) {
	if res.State != nil {
		c.JSON(http.StatusUnprocessableEntity, res.State)
		return
	}
	c.Redirect(http.StatusSeeOther, res.Redirect)
}

// ErrorJSON 返回 {error} 结构
func ErrorJSON(c *gin.Context, code int, message string) {
	c.JSON(code, APIError{Error: message})
}
