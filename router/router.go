package router

import (
	"net/http"
	"time"

	"dashboard/api"
	"dashboard/cache"
	"dashboard/config"
	"dashboard/database"
	_ "dashboard/docs"
	"dashboard/metrics"
	"dashboard/middleware"
	"dashboard/service"
	"dashboard/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps 路由依赖，测试时可替换
type Deps struct {
	DB      *gorm.DB
	Dialect database.Dialect
	Views   cache.Views
	Fs      afero.Fs
}

// SetupRouter 设置路由，使用全局数据库连接与配置中的缓存和上传目录
func SetupRouter(cfg *config.Config) *gin.Engine {
	return NewEngine(cfg, Deps{
		DB:      database.DB,
		Dialect: database.Current,
		Views:   cache.New(cfg.Cache),
		Fs:      afero.NewOsFs(),
	})
}

// NewEngine 按依赖组装路由
func NewEngine(cfg *config.Config, deps Deps) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()
	r.Use(metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	// 服务
	invoices := service.NewInvoiceService(deps.DB, deps.Dialect)
	customers := service.NewCustomerService(deps.DB, deps.Dialect)
	dashboard := service.NewDashboardService(deps.DB)
	authenticator := service.NewAuthenticator(deps.DB, tokenIssuer(cfg))
	actions := service.NewActions(deps.DB, deps.Views, authenticator)
	seeder := service.NewSeeder(deps.DB, cfg.Seed.Timeout())
	store := storage.NewImageStore(deps.Fs, cfg.Upload.Dir, cfg.Upload.PublicPrefix)

	// 处理器
	authHandler := api.NewAuthHandler(actions, cfg.Session.ExpireTime)
	dashboardHandler := api.NewDashboardHandler(dashboard)
	invoiceHandler := api.NewInvoiceHandler(invoices, customers, actions, deps.Views)
	customerHandler := api.NewCustomerHandler(customers, actions, deps.Views)
	uploadHandler := api.NewUploadHandler(store, cfg.Upload.MaxSize())
	opsHandler := api.NewOpsHandler(seeder, dashboard, cfg)

	// 运维接口与静态资源，不经过授权
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.StaticFS(cfg.Upload.PublicPrefix, afero.NewHttpFs(afero.NewBasePathFs(deps.Fs, cfg.Upload.Dir)))

	// 图片上传
	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/upload", uploadHandler.Upload)
	}

	// 页面与表单动作
	pages := r.Group("")
	pages.Use(middleware.Session(), middleware.AuthGate())
	{
		pages.GET("/", authHandler.Home)
		pages.GET("/login", authHandler.LoginPage)
		pages.POST("/login", middleware.LoginRateLimit(cfg.Server.LoginRateLimit, time.Minute), authHandler.Login)

		pages.GET("/seed", opsHandler.Seed)
		pages.POST("/seed", opsHandler.Seed)
		pages.GET("/query", opsHandler.Query)
		pages.GET("/debug-env", opsHandler.DebugEnv)

		dash := pages.Group("/dashboard")
		{
			dash.GET("", dashboardHandler.Overview)
			dash.POST("/logout", authHandler.Logout)

			inv := dash.Group("/invoices")
			{
				inv.GET("", invoiceHandler.List)
				inv.POST("", invoiceHandler.Create)
				inv.GET("/create", invoiceHandler.CreatePage)
				inv.GET("/export", invoiceHandler.Export)
				inv.GET("/:id/edit", invoiceHandler.EditPage)
				inv.POST("/:id", invoiceHandler.Update)
				inv.POST("/:id/delete", invoiceHandler.Delete)
			}

			cus := dash.Group("/customers")
			{
				cus.GET("", customerHandler.List)
				cus.POST("", customerHandler.Create)
				cus.GET("/:id/edit", customerHandler.EditPage)
				cus.POST("/:id", customerHandler.Update)
				cus.POST("/:id/delete", customerHandler.Delete)
			}
		}
	}

	return r
}

// tokenIssuer 未配置会话密钥时返回 nil，登录将报 Configuration 错误
func tokenIssuer(cfg *config.Config) service.TokenIssuer {
	if !middleware.Configured() {
		return nil
	}
	return func(userID, email string) (string, error) {
		return middleware.GenerateToken(userID, email, cfg.Session.ExpireTime)
	}
}

// corsConfig 未配置来源时允许所有来源（不携带凭据）
func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
