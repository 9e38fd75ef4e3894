package payments

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault-backend/internal/platform/apperr"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pay(id int64, date time.Time, method, amount string) Payment {
	return Payment{ID: id, PaymentDate: date, PaymentMethod: method, AmountPaid: decimal.RequireFromString(amount), OrderID: id + 100}
}

func sample() Snapshot {
	return Snapshot{Payments: []Payment{
		pay(1, day(2024, 1, 5), "Cash", "20.00"),
		pay(2, day(2024, 1, 10), "Cash", "30.00"),
		pay(3, day(2024, 2, 1), "Card", "15.00"),
	}}
}

func ptr(t time.Time) *time.Time { return &t }

func TestFilterAndAggregate_JanuaryScenario(t *testing.T) {
	got, err := sample().FilterByDateRange(ptr(day(2024, 1, 1)), ptr(day(2024, 1, 31)))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	sum := AggregateByMethod(got)
	require.Len(t, sum.ByMethod, 1)
	cash := sum.ByMethod["Cash"]
	assert.Equal(t, 2, cash.Count)
	assert.True(t, cash.AmountSum.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, 2, sum.TotalCount)
	assert.True(t, sum.TotalAmount.Equal(decimal.RequireFromString("50")))
	assert.Equal(t, []string{"Cash"}, sum.Methods)
}

func TestFilterByDateRange_SingleDay(t *testing.T) {
	got, err := sample().FilterByDateRange(ptr(day(2024, 1, 10)), ptr(day(2024, 1, 10)))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilterByDateRange_IgnoresTimeOfDay(t *testing.T) {
	end := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{Payments: []Payment{pay(9, time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC), "Venmo", "5")}}

	got, err := snap.FilterByDateRange(ptr(day(2024, 1, 1)), &end)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFilterByDateRange_Validation(t *testing.T) {
	snap := sample()

	_, err := snap.FilterByDateRange(nil, ptr(day(2024, 1, 1)))
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	_, err = snap.FilterByDateRange(ptr(day(2024, 1, 1)), nil)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	_, err = snap.FilterByDateRange(ptr(day(2024, 2, 1)), ptr(day(2024, 1, 31)))
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	// no data still fails on a reversed range
	_, err = Snapshot{}.FilterByDateRange(ptr(day(2024, 2, 1)), ptr(day(2024, 1, 31)))
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestFilterByDateRange_DoesNotMutateSnapshot(t *testing.T) {
	snap := sample()
	_, err := snap.FilterByDateRange(ptr(day(2024, 2, 1)), ptr(day(2024, 2, 1)))
	require.NoError(t, err)
	assert.Len(t, snap.Payments, 3)
}

func TestAggregateByMethod_TotalsMatchGroups(t *testing.T) {
	payments := []Payment{
		pay(1, day(2024, 1, 1), "Cash", "0.10"),
		pay(2, day(2024, 1, 1), "Cash", "0.20"),
		pay(3, day(2024, 1, 2), "Paypal", "19.99"),
		pay(4, day(2024, 1, 3), "Credit Card", "59.99"),
		pay(5, day(2024, 1, 3), "Paypal", "0.01"),
	}
	sum := AggregateByMethod(payments)

	count := 0
	amount := decimal.Zero
	for _, m := range sum.Methods {
		count += sum.ByMethod[m].Count
		amount = amount.Add(sum.ByMethod[m].AmountSum)
	}
	assert.Equal(t, len(payments), sum.TotalCount)
	assert.Equal(t, sum.TotalCount, count)
	assert.True(t, sum.TotalAmount.Equal(amount))
	assert.Equal(t, "80.29", sum.TotalAmount.StringFixed(2))
	assert.Equal(t, "0.30", sum.ByMethod["Cash"].AmountSum.StringFixed(2))
	assert.Equal(t, []string{"Cash", "Credit Card", "Paypal"}, sum.Methods)
}

func TestAggregateByMethod_Empty(t *testing.T) {
	sum := AggregateByMethod(nil)
	assert.Empty(t, sum.ByMethod)
	assert.Equal(t, 0, sum.TotalCount)
	assert.True(t, sum.TotalAmount.IsZero())
}

func TestWriteCSV(t *testing.T) {
	payments := sample().Payments
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, payments, AggregateByMethod(payments), true))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "missing BOM")

	r := csv.NewReader(bytes.NewReader(raw[3:]))
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"payment_id", "payment_date", "payment_method", "amount_paid", "order_id"}, recs[0])
	assert.Equal(t, []string{"1", "2024-01-05", "Cash", "20.00", "101"}, recs[1])
	assert.Equal(t, []string{"TOTAL", "3", "65.00"}, recs[len(recs)-1])
}

func TestWriteCSV_WithoutBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, AggregateByMethod(nil), false))
	assert.True(t, strings.HasPrefix(buf.String(), "payment_id,"))
}
