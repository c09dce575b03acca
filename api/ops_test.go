package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"dashboard/config"
	"dashboard/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func opsRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	h := NewOpsHandler(service.NewSeeder(db, time.Second), service.NewDashboardService(db), cfg)
	r := gin.New()
	r.GET("/seed", h.Seed)
	r.GET("/query", h.Query)
	r.GET("/debug-env", h.DebugEnv)
	return r
}

func TestOpsHandler_Seed(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users` .* ON DUPLICATE KEY UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `customers` .* ON DUPLICATE KEY UPDATE").WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `invoices`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `invoices`").WillReturnResult(sqlmock.NewResult(0, 13))
	mock.ExpectExec("INSERT INTO `revenue`").WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectCommit()
	for _, n := range []int{1, 6, 13, 12} {
		mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
	}

	w := get(opsRouter(db, &config.Config{}), "/seed")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"message": "Database seeded successfully",
		"counts": {"users": 1, "customers": 6, "invoices": 13, "revenue": 12}
	}`, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpsHandler_Seed_Failure(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	w := get(opsRouter(db, &config.Config{}), "/seed")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp SeedErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to seed database", resp.Message)
	assert.Equal(t, "too many connections", resp.Error)
	assert.NotEmpty(t, resp.Stack)
}

func TestOpsHandler_Seed_FailureInRelease(t *testing.T) {
	config.GlobalConfig = &config.Config{Server: config.ServerConfig{Mode: "release"}}
	defer func() { config.GlobalConfig = nil }()

	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	w := get(opsRouter(db, config.GlobalConfig), "/seed")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp SeedErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "seed transaction failed", resp.Error)
	assert.Empty(t, resp.Stack)
}

func TestOpsHandler_Query(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT invoices.amount, customers.name FROM `invoices`").
		WithArgs(service.DiagnosticAmount).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "name"}).AddRow(666, "Evil Rabbit"))

	w := get(opsRouter(db, &config.Config{}), "/query")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"amount":666,"name":"Evil Rabbit"}]`, w.Body.String())
}

func TestOpsHandler_Query_Empty(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT invoices.amount").
		WillReturnRows(sqlmock.NewRows([]string{"amount", "name"}))

	w := get(opsRouter(db, &config.Config{}), "/query")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestOpsHandler_Query_Error(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT invoices.amount").WillReturnError(errors.New("relation \"invoices\" does not exist"))

	w := get(opsRouter(db, &config.Config{}), "/query")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "does not exist")
}

func TestOpsHandler_DebugEnv_HidesSecrets(t *testing.T) {
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "debug"},
		Database: config.DatabaseConfig{Driver: "postgres", Host: "db", DBName: "dashboard", Password: "hunter22"},
		Session:  config.SessionConfig{Secret: "very-secret-session-key"},
	}

	w := get(opsRouter(nil, cfg), "/debug-env")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database_driver":"postgres"`)
	assert.NotContains(t, w.Body.String(), "hunter22")
	assert.NotContains(t, w.Body.String(), "very-secret-session-key")
}
