package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "Failed to fetch invoices."
	testErr := errors.New("pq: relation \"invoices\" does not exist")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式返回 fallback，不暴露错误详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, testErr.Error(), SafeErrorMessage(testErr, fallback))

	// GlobalConfig 为 nil 时视为开发环境
	GlobalConfig = nil
	assert.Equal(t, testErr.Error(), SafeErrorMessage(testErr, fallback))
}

func TestIsProduction(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	GlobalConfig = nil
	assert.False(t, IsProduction())

	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.False(t, IsProduction())

	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	assert.True(t, IsProduction())
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Session.ExpireTime)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxSize())
	assert.Equal(t, 30*time.Second, cfg.Seed.Timeout())
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadConfig_ExternalFileAndEnv(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  driver: mysql\n  port: \"3306\"\nsession:\n  expire_hours: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("DASHBOARD_SERVER_MODE", "release")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, 2*time.Hour, cfg.Session.ExpireTime)
	assert.Equal(t, "release", cfg.Server.Mode)
	// 未覆盖的字段保持默认
	assert.Equal(t, "public/customers", cfg.Upload.Dir)
}

func TestSectionFallbacks(t *testing.T) {
	assert.Equal(t, int64(5<<20), UploadConfig{}.MaxSize())
	assert.Equal(t, int64(2<<20), UploadConfig{MaxSizeMB: 2}.MaxSize())
	assert.Equal(t, time.Minute, CacheConfig{}.TTL())
	assert.Equal(t, 10*time.Second, CacheConfig{TTLSeconds: 10}.TTL())
	assert.Equal(t, 30*time.Second, SeedConfig{}.Timeout())
}

func TestPrintConfig(t *testing.T) {
	GlobalConfig = &Config{
		Server:   ServerConfig{Port: ":8080", Mode: "debug"},
		Database: DatabaseConfig{Driver: "postgres", Username: "postgres", Password: "hunter22", Host: "db", Port: "5432", DBName: "dashboard"},
		Session:  SessionConfig{Secret: "session-secret"},
	}
	defer func() { GlobalConfig = nil }()

	log, hook := test.NewNullLogger()
	PrintConfig(log)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "postgres@db:5432/dashboard", entry.Data["db_addr"])
	for _, v := range entry.Data {
		assert.NotContains(t, fmt.Sprint(v), "hunter22")
		assert.NotContains(t, fmt.Sprint(v), "session-secret")
	}

	// 未加载配置时不输出
	GlobalConfig = nil
	hook.Reset()
	PrintConfig(log)
	assert.Empty(t, hook.Entries)
}
