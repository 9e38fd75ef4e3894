package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gamevault-backend/internal/platform/apperr"
	"gamevault-backend/internal/platform/db"
)

var paymentCols = []string{"payment_id", "payment_date", "payment_method", "amount_paid", "order_id"}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	svc := NewService(db.NewGateway(sqlDB, zap.NewNop(), nil), zap.NewNop())
	svc.now = func() time.Time { return day(2024, 3, 1) }
	return svc, mock
}

func expectPayments(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments ORDER BY payment_id")).
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(1, day(2024, 1, 5), "Cash", "20.00", 101).
			AddRow(2, day(2024, 1, 10), "Cash", "30.00", 102).
			AddRow(3, day(2024, 2, 1), "Card", "15.00", 103))
}

func TestListAll(t *testing.T) {
	svc, mock := newTestService(t)
	expectPayments(mock)

	snap, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Payments, 3)
	assert.Equal(t, "Card", snap.Payments[2].PaymentMethod)
	assert.Equal(t, "15.00", snap.Payments[2].AmountPaid.StringFixed(2))
	assert.Equal(t, day(2024, 3, 1), snap.LoadedAt)
}

func TestRange_OneBoundIsInvalid(t *testing.T) {
	svc, mock := newTestService(t)
	expectPayments(mock)

	from := day(2024, 1, 1)
	_, err := svc.Range(context.Background(), &from, nil)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestHandler_Summary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, mock := newTestService(t)
	r := gin.New()
	RegisterRoutes(r, svc)
	expectPayments(mock)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/summary?from=2024-01-01&to=2024-01-31", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"by_method": {"Cash": {"count": 2, "amount_sum": "50"}},
		"methods": ["Cash"],
		"total_count": 2,
		"total_amount": "50"
	}`, w.Body.String())
}

func TestHandler_ReversedRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, mock := newTestService(t)
	r := gin.New()
	RegisterRoutes(r, svc)
	expectPayments(mock)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments?from=2024-02-01&to=2024-01-01", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, mock := newTestService(t)
	r := gin.New()
	RegisterRoutes(r, svc)
	expectPayments(mock)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/export.csv?bom=false", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "TOTAL,3,65.00")
}
