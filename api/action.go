package api

import (
	"errors"
	"net/http"

	"dashboard/metrics"
	"dashboard/service"

	"github.com/gin-gonic/gin"
)

// respondAction 输出表单动作结果并记录指标
func respondAction(c *gin.Context, action string, res *service.ActionResult, err error) {
	if err != nil {
		metrics.RecordMutation(action, metrics.ResultError)
		actionError(c, err)
		return
	}
	if res.State != nil {
		metrics.RecordMutation(action, metrics.ResultInvalid)
	} else {
		metrics.RecordMutation(action, metrics.ResultOK)
	}
	ActionResponse(c, res)
}

// respondDelete 删除成功后跳回列表页
func respondDelete(c *gin.Context, action, redirect string, err error) {
	if err != nil {
		metrics.RecordMutation(action, metrics.ResultError)
		actionError(c, err)
		return
	}
	metrics.RecordMutation(action, metrics.ResultOK)
	c.Redirect(http.StatusSeeOther, redirect)
}

// actionError 存储层错误只返回通用文案
func actionError(c *gin.Context, err error) {
	var domainErr *service.Error
	if errors.As(err, &domainErr) {
		InternalError(c, domainErr.Message)
		return
	}
	InternalError(c, SafeErrorMessage(err, BoundaryMessage))
}

// bindForm 读取表单，失败时返回 400
func bindForm(c *gin.Context) (map[string]string, bool) {
	form, err := readForm(c)
	if err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid form data."))
		return nil, false
	}
	return form, true
}
