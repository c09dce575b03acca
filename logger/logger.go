package logger

import (
	"os"
	"strings"

	"dashboard/config"

	"github.com/sirupsen/logrus"
)

// L 进程级日志实例，与 logrus 标准实例相同，Init 之前的日志也经过它
var L = logrus.StandardLogger()

// Init 根据配置初始化日志级别与输出格式
func Init(cfg config.LogConfig) {
	L.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	L.SetLevel(level)

	if cfg.Format == "json" {
		L.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		L.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
}

// WithComponent 返回带组件字段的日志入口
func WithComponent(name string) *logrus.Entry {
	return L.WithField("component", name)
}
