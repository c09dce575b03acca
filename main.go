package main

import (
	"flag"
	"fmt"
	"strings"

	"dashboard/config"
	"dashboard/database"
	"dashboard/logger"
	"dashboard/middleware"
	"dashboard/router"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// @title Invoice Dashboard API
// @version 1.0
// @description 发票与客户管理后台：列表查询、表单动作、头像上传、演示数据初始化
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		logger.L.Info("Invoice Dashboard v1.0.0")
		return
	}

	// .env 可选，不存在时忽略
	if err := godotenv.Load(); err == nil {
		logger.L.Info("已加载 .env")
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖 + 环境变量）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		logger.L.WithError(err).Fatal("加载配置失败")
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		logger.L.Infof("命令行指定端口: %s", port)
	}

	logger.Init(cfg.Log)
	config.PrintConfig(logger.L)

	if err := database.Init(cfg); err != nil {
		logger.L.WithError(err).Fatal("数据库初始化失败")
	}

	middleware.InitJWT(cfg)
	if !middleware.Configured() {
		logger.L.Warn("session.secret 未配置，登录将返回 Something went wrong.")
	}

	r := router.SetupRouter(cfg)

	logger.L.WithFields(logrus.Fields{
		"home":    fmt.Sprintf("http://localhost%s/", cfg.Server.Port),
		"swagger": fmt.Sprintf("http://localhost%s/swagger/index.html", cfg.Server.Port),
		"metrics": fmt.Sprintf("http://localhost%s/metrics", cfg.Server.Port),
	}).Info("Invoice Dashboard 已启动")

	if err := r.Run(cfg.Server.Port); err != nil {
		logger.L.WithError(err).Fatal("服务器启动失败")
	}
}
