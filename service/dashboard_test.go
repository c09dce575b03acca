package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_FetchRevenue(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT \\* FROM `revenue`").
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue"}).
			AddRow("Mar", 2200).
			AddRow("Jan", 2000).
			AddRow("Dec", 4800).
			AddRow("Feb", 1800))

	list, err := NewDashboardService(db).FetchRevenue(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 4)
	months := []string{list[0].Month, list[1].Month, list[2].Month, list[3].Month}
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Dec"}, months)
	assert.Equal(t, int64(2000), list[0].Revenue)
}

func TestDashboardService_FetchRevenue_Error(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT \\* FROM `revenue`").WillReturnError(errors.New("down"))

	_, err := NewDashboardService(db).FetchRevenue(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch revenue data.", err.Error())
}

func TestDashboardService_FetchLatestInvoices(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT invoices.id, invoices.amount, customers.name, customers.email, customers.image_url FROM `invoices` JOIN customers .* ORDER BY invoices.date DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "name", "email", "image_url"}).
			AddRow("i1", 15795, "Evil Rabbit", "evil@rabbit.com", "/customers/evil-rabbit.png").
			AddRow("i2", 666, "Amy Burns", "amy@burns.com", nil))

	list, err := NewDashboardService(db).FetchLatestInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "$157.95", list[0].Amount)
	assert.Equal(t, "$6.66", list[1].Amount)
	assert.Nil(t, list[1].ImageURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardService_FetchCardData(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `invoices`$").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `customers`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery("SELECT status, SUM\\(amount\\) AS total FROM `invoices` GROUP BY `status`|SELECT status, SUM\\(amount\\) AS total FROM `invoices` GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}).
			AddRow("paid", 125000).
			AddRow("pending", 15795))

	data, err := NewDashboardService(db).FetchCardData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(13), data.NumberOfInvoices)
	assert.Equal(t, int64(6), data.NumberOfCustomers)
	assert.Equal(t, "$1,250.00", data.TotalPaidInvoices)
	assert.Equal(t, "$157.95", data.TotalPendingInvoices)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardService_FetchCardData_EmptyTables(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `invoices`$").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `customers`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT status, SUM").
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}))

	data, err := NewDashboardService(db).FetchCardData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$0.00", data.TotalPaidInvoices)
	assert.Equal(t, "$0.00", data.TotalPendingInvoices)
}

func TestDashboardService_FetchCardData_Error(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `invoices`$").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `customers`").
		WillReturnError(errors.New("lost connection"))
	mock.ExpectQuery("SELECT status, SUM").
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}))

	data, err := NewDashboardService(db).FetchCardData(context.Background())
	assert.Nil(t, data)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch card data.", err.Error())
}

func TestDashboardService_DiagnosticInvoices(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT invoices.amount, customers.name FROM `invoices` JOIN customers .* WHERE invoices.amount = \\?").
		WithArgs(DiagnosticAmount).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "name"}).AddRow(666, "Evil Rabbit"))

	list, err := NewDashboardService(db).DiagnosticInvoices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []DiagnosticInvoice{{Amount: 666, Name: "Evil Rabbit"}}, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardService_DiagnosticInvoices_Error(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	dbErr := errors.New("relation \"invoices\" does not exist")
	mock.ExpectQuery("SELECT invoices.amount").WillReturnError(dbErr)

	_, err := NewDashboardService(db).DiagnosticInvoices(context.Background())
	assert.Equal(t, dbErr, err)
}
