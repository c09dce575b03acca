package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	LoginRateLimit int      `mapstructure:"login_rate_limit"` // 每 IP 每分钟登录次数，<=0 关闭
	CORSOrigins    []string `mapstructure:"cors_origins"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres / mysql
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	Charset      string `mapstructure:"charset"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// SessionConfig 登录会话配置
type SessionConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// UploadConfig 客户头像上传配置
type UploadConfig struct {
	Dir          string `mapstructure:"dir"`
	PublicPrefix string `mapstructure:"public_prefix"`
	MaxSizeMB    int    `mapstructure:"max_size_mb"`
}

// MaxSize 上传大小上限（字节）
func (u UploadConfig) MaxSize() int64 {
	if u.MaxSizeMB <= 0 {
		return 5 << 20
	}
	return int64(u.MaxSizeMB) << 20
}

// CacheConfig 页面视图缓存配置（Redis）
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// TTL 缓存过期时间
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// SeedConfig 演示数据初始化配置
type SeedConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout 初始化事务超时时间
func (s SeedConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text / json
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	logrus.Info("已加载内置默认配置")

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			logrus.WithError(err).Warnf("无法读取指定配置文件 %s", configPath)
		} else {
			logrus.Infof("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/dashboard")
		externalViper.AddConfigPath("$HOME/.dashboard")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				logrus.WithError(err).Warn("合并外部配置失败")
			} else {
				logrus.Infof("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 环境变量覆盖，如 DASHBOARD_DATABASE_HOST
	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if cfg.Session.ExpireHours <= 0 {
		cfg.Session.ExpireHours = 24
	}
	cfg.Session.ExpireTime = time.Duration(cfg.Session.ExpireHours) * time.Hour
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}

	GlobalConfig = &cfg

	return &cfg, nil
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// IsProduction 是否为生产模式（release），未加载配置时视为开发环境
func IsProduction() bool {
	return GlobalConfig != nil && GlobalConfig.Server.Mode == "release"
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig(log logrus.FieldLogger) {
	if GlobalConfig == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"port":          GlobalConfig.Server.Port,
		"mode":          GlobalConfig.Server.Mode,
		"db_driver":     GlobalConfig.Database.Driver,
		"db_addr":       fmt.Sprintf("%s@%s:%s/%s", GlobalConfig.Database.Username, GlobalConfig.Database.Host, GlobalConfig.Database.Port, GlobalConfig.Database.DBName),
		"upload_dir":    GlobalConfig.Upload.Dir,
		"cache_enabled": GlobalConfig.Cache.Enabled,
	}).Info("当前配置")
}
