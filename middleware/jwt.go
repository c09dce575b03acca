package middleware

import (
	"errors"
	"strings"
	"time"

	"dashboard/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie 会话令牌所在的 Cookie 名
const SessionCookie = "session"

// 上下文键
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextLoggedIn = "loggedIn"
)

// ErrSecretNotConfigured 未配置会话密钥
var ErrSecretNotConfigured = errors.New("session secret not configured")

var jwtSecret []byte

// Claims 会话令牌载荷
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// InitJWT 从配置读取会话密钥
func InitJWT(cfg *config.Config) {
	jwtSecret = []byte(cfg.Session.Secret)
}

// Configured 是否已配置会话密钥
func Configured() bool {
	return len(jwtSecret) > 0
}

// GenerateToken 签发会话令牌
func GenerateToken(userID, email string, ttl time.Duration) (string, error) {
	if !Configured() {
		return "", ErrSecretNotConfigured
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// ParseToken 校验并解析会话令牌
func ParseToken(tokenStr string) (*Claims, error) {
	if !Configured() {
		return nil, ErrSecretNotConfigured
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if c, ok := token.Claims.(*Claims); ok && token.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// Session 解析会话 Cookie（或 Bearer 头），将登录状态写入上下文。
// 令牌缺失或无效时视为未登录，是否放行由 AuthGate 决定。
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextLoggedIn, false)
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := ParseToken(token)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextLoggedIn, true)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// GetCurrentUserID 获取当前登录用户 ID，未登录返回空串
func GetCurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// IsLoggedIn 当前请求是否携带有效会话
func IsLoggedIn(c *gin.Context) bool {
	return c.GetBool(ContextLoggedIn)
}
