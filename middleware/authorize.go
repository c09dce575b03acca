package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// 登录页与登录后落地页
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// openPaths 无论是否登录都放行。
// 这些路径会读写整库数据，放行是沿用的既有行为，部署到公网前应收紧。
var openPaths = map[string]bool{
	"/seed":      true,
	"/query":     true,
	"/debug-env": true,
}

// Decision 授权判定结果，Allow 为 false 时跳转到 Redirect
type Decision struct {
	Allow    bool
	Redirect string
}

// Authorize 根据路径和登录状态判定是否放行
func Authorize(path string, loggedIn bool) Decision {
	if openPaths[path] {
		return Decision{Allow: true}
	}
	if isDashboard(path) {
		if loggedIn {
			return Decision{Allow: true}
		}
		return Decision{Redirect: LoginPath + "?callbackUrl=" + url.QueryEscape(path)}
	}
	if loggedIn {
		if path == LoginPath {
			return Decision{Allow: true}
		}
		return Decision{Redirect: DashboardPath}
	}
	return Decision{Allow: true}
}

func isDashboard(path string) bool {
	return path == DashboardPath || strings.HasPrefix(path, DashboardPath+"/")
}

// AuthGate 页面路由的授权中间件，需在 Session 之后注册
func AuthGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		d := Authorize(c.Request.URL.Path, IsLoggedIn(c))
		if d.Allow {
			c.Next()
			return
		}
		c.Redirect(http.StatusSeeOther, d.Redirect)
		c.Abort()
	}
}
