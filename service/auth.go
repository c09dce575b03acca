package service

import (
	"context"
	"errors"
	"fmt"

	"dashboard/models"
	"dashboard/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthErrorType 认证错误分类
type AuthErrorType string

const (
	// CredentialsSignin 用户不存在、密码错误或凭据格式错误
	CredentialsSignin AuthErrorType = "CredentialsSignin"
	// CallbackRouteError 校验凭据过程中存储层出错
	CallbackRouteError AuthErrorType = "CallbackRouteError"
	// Configuration 未配置会话密钥
	Configuration AuthErrorType = "Configuration"
)

// AuthError 已分类的认证错误
type AuthError struct {
	Type AuthErrorType
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return string(e.Type)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TokenIssuer 为登录用户签发会话令牌
type TokenIssuer func(userID, email string) (string, error)

// Session 登录成功后的会话
type Session struct {
	User  *models.User
	Token string
}

var credentialsSchema = validation.Schema{
	{Name: "email", Tag: "email", Message: "Invalid email."},
	{Name: "password", Tag: "min=6", Message: "Invalid password."},
}

// Authenticator 凭据校验与会话签发
type Authenticator struct {
	db    *gorm.DB
	issue TokenIssuer
}

// NewAuthenticator 创建认证器，issue 为空表示会话密钥未配置
func NewAuthenticator(db *gorm.DB, issue TokenIssuer) *Authenticator {
	return &Authenticator{db: db, issue: issue}
}

// SignIn 校验邮箱与密码并签发会话；令牌签发失败的错误不做分类
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if a.issue == nil {
		return nil, &AuthError{Type: Configuration}
	}

	values, errs := credentialsSchema.Validate(map[string]string{"email": email, "password": password})
	if errs != nil {
		return nil, &AuthError{Type: CredentialsSignin}
	}

	var user models.User
	err := a.db.WithContext(ctx).Where("email = ?", values.String("email")).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &AuthError{Type: CredentialsSignin}
	}
	if err != nil {
		return nil, &AuthError{Type: CallbackRouteError, Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(values.String("password"))); err != nil {
		return nil, &AuthError{Type: CredentialsSignin}
	}

	token, err := a.issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{User: &user, Token: token}, nil
}

// Authenticate 登录表单动作：成功返回会话；已分类错误返回提示文案；未分类错误原样返回
func (a *Actions) Authenticate(ctx context.Context, form map[string]string) (*Session, string, error) {
	session, err := a.auth.SignIn(ctx, form["email"], form["password"])
	if err == nil {
		return session, "", nil
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		switch authErr.Type {
		case CredentialsSignin:
			return nil, "Invalid credentials.", nil
		default:
			return nil, "Something went wrong.", nil
		}
	}
	return nil, "", err
}
