package rentals

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

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var rentalCols = []string{"rental_id", "customer_id", "game_id", "received_date", "returned_date"}

func newTestService(t *testing.T, now time.Time) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	svc := NewService(db.NewGateway(sqlDB, zap.NewNop(), nil), zap.NewNop(), time.UTC)
	svc.clock = fixedClock{t: now}
	return svc, mock
}

func TestListActive_ClassifiesEveryRead(t *testing.T) {
	svc, mock := newTestService(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(rentalCols).
			AddRow(1, 10, 100, date(2024, 1, 1), nil).
			AddRow(2, 11, 101, date(2024, 1, 10), nil)
	}
	mock.ExpectQuery(regexp.QuoteMeta("FROM Rentals WHERE returned_date IS NULL")).WillReturnRows(rows())
	mock.ExpectQuery(regexp.QuoteMeta("FROM Rentals WHERE returned_date IS NULL")).WillReturnRows(rows())

	got, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 14, got[0].DaysOut)
	assert.False(t, got[0].IsOverdue)
	assert.Nil(t, got[0].ReturnedDate)
	assert.Equal(t, 5, got[1].DaysOut)

	// a day later the same rows classify differently
	svc.clock = fixedClock{t: time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)}
	got, err = svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, got[0].DaysOut)
	assert.True(t, got[0].IsOverdue)
	assert.False(t, got[1].IsOverdue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListHistory(t *testing.T) {
	svc, mock := newTestService(t, time.Now())
	returned := date(2024, 1, 9)
	mock.ExpectQuery(regexp.QuoteMeta("FROM RentalHistory")).
		WillReturnRows(sqlmock.NewRows([]string{"rental_id", "customer_name", "game_title", "received_date", "returned_date"}).
			AddRow(1, "Ada Lovelace", "Celeste", date(2024, 1, 1), returned).
			AddRow(2, "Alan Turing", "Hades", date(2024, 1, 3), nil))

	got, err := svc.ListHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].ReturnedDate)
	assert.Equal(t, returned, *got[0].ReturnedDate)
	assert.Nil(t, got[1].ReturnedDate)
}

func TestMarkReturned_SecondCallIsNoOp(t *testing.T) {
	svc, mock := newTestService(t, time.Now())
	q := regexp.QuoteMeta("SET returned_date = GREATEST(CURDATE(), received_date) WHERE rental_id = ? AND returned_date IS NULL")
	mock.ExpectExec(q).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, svc.MarkReturned(context.Background(), 5))
	require.NoError(t, svc.MarkReturned(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReturned_RejectsBadID(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	assert.True(t, apperr.Is(svc.MarkReturned(context.Background(), -1), apperr.CodeInvalidArgument))
}

func TestActiveCount(t *testing.T) {
	svc, mock := newTestService(t, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM Rentals WHERE returned_date IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := svc.ActiveCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestHandler_ListActive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, mock := newTestService(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	r := gin.New()
	RegisterRoutes(r, svc)

	mock.ExpectQuery(regexp.QuoteMeta("FROM Rentals")).
		WillReturnRows(sqlmock.NewRows(rentalCols).
			AddRow(1, 10, 100, date(2024, 1, 1), nil).
			AddRow(2, 11, 101, date(2024, 1, 30), nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rentals/active", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
	assert.Contains(t, w.Body.String(), `"overdue":1`)
}
