package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"dashboard/cache"
	"dashboard/database"
	"dashboard/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var mysqlDialect = database.DialectFor(database.DriverMySQL)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock, func() {
		sqlDB.Close()
	}
}

// testHandlers 基于同一个 mock 连接组装的处理器
type testHandlers struct {
	invoice  *InvoiceHandler
	customer *CustomerHandler
	auth     *AuthHandler
}

func newTestHandlers(db *gorm.DB, issuer service.TokenIssuer) testHandlers {
	invoices := service.NewInvoiceService(db, mysqlDialect)
	customers := service.NewCustomerService(db, mysqlDialect)
	actions := service.NewActions(db, cache.Noop{}, service.NewAuthenticator(db, issuer))
	return testHandlers{
		invoice:  NewInvoiceHandler(invoices, customers, actions, cache.Noop{}),
		customer: NewCustomerHandler(customers, actions, cache.Noop{}),
		auth:     NewAuthHandler(actions, 0),
	}
}

func postForm(router *gin.Engine, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func init() {
	gin.SetMode(gin.TestMode)
}
