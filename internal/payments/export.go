package payments

import (
	"encoding/csv"
	"io"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const csvDateLayout = "2006-01-02"

// WriteCSV writes the payment rows followed by one total line per method and
// a grand total. withBOM prefixes a UTF-8 BOM so spreadsheet apps detect the
// encoding.
func WriteCSV(w io.Writer, payments []Payment, sum Summary, withBOM bool) error {
	enc := unicode.UTF8.NewEncoder()
	if withBOM {
		enc = unicode.UTF8BOM.NewEncoder()
	}
	tw := transform.NewWriter(w, enc)
	cw := csv.NewWriter(tw)

	records := [][]string{{"payment_id", "payment_date", "payment_method", "amount_paid", "order_id"}}
	for _, p := range payments {
		records = append(records, []string{
			strconv.FormatInt(p.ID, 10),
			p.PaymentDate.Format(csvDateLayout),
			p.PaymentMethod,
			p.AmountPaid.StringFixed(2),
			strconv.FormatInt(p.OrderID, 10),
		})
	}
	// 集計行
	records = append(records, []string{})
	records = append(records, []string{"method", "count", "amount_sum"})
	for _, m := range sum.Methods {
		mt := sum.ByMethod[m]
		records = append(records, []string{m, strconv.Itoa(mt.Count), mt.AmountSum.StringFixed(2)})
	}
	records = append(records, []string{"TOTAL", strconv.Itoa(sum.TotalCount), sum.TotalAmount.StringFixed(2)})

	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return tw.Close()
}
