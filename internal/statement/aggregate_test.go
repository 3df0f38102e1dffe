package statement

import (
	"errors"
	"reflect"
	"testing"

	"statements/internal/core"
)

func row(customer, inv string, date, due, received, recvDate any) core.LedgerRow {
	return core.LedgerRow{
		Customer:       customer,
		InvoiceNumber:  inv,
		InvoiceDate:    date,
		InvoiceAmount:  due,
		DueAmount:      due,
		AmountReceived: received,
		ReceivedDate:   recvDate,
	}
}

func TestAggregateNoPeriod(t *testing.T) {
	rows := []core.LedgerRow{
		row("X", "INV-1", "01-01-2024", "1,000.00", "", nil),
		row("X", "INV-2", "05-01-2024", "500.00", "", nil),
	}

	st, err := Aggregate(rows, "X", Period{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if got := st.Closing.StringFixed(2); got != "1500.00" {
		t.Errorf("closing = %s, want 1500.00", got)
	}
	if len(st.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(st.Lines))
	}
	if st.DateRange != "01-Jan-2024 to 05-Jan-2024" {
		t.Errorf("date range = %q", st.DateRange)
	}
	if st.Lines[0].Seq != 1 || st.Lines[1].Seq != 2 {
		t.Errorf("sequence numbers = %d, %d", st.Lines[0].Seq, st.Lines[1].Seq)
	}
	if st.Lines[0].DueAmount != "1,000.00" {
		t.Errorf("line 1 due = %q, want 1,000.00", st.Lines[0].DueAmount)
	}
}

func TestAggregateWithPeriod(t *testing.T) {
	rows := []core.LedgerRow{
		row("X", "INV-1", "01-01-2024", "1,000.00", "", nil),
		row("X", "INV-2", "05-01-2024", "500.00", "200.00", "10-01-2024"),
	}
	period := Period{From: core.NewDate(2024, 1, 3), To: core.NewDate(2024, 1, 10)}

	st, err := Aggregate(rows, "X", period)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if got := st.Opening.StringFixed(2); got != "1000.00" {
		t.Errorf("opening = %s, want 1000.00", got)
	}
	if len(st.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(st.Lines))
	}
	if got := st.Invoiced.StringFixed(2); got != "500.00" {
		t.Errorf("invoiced = %s, want 500.00", got)
	}
	if got := st.Received.StringFixed(2); got != "200.00" {
		t.Errorf("received = %s, want 200.00", got)
	}
	// closing = opening + invoices - receipts
	if got := st.Closing.StringFixed(2); got != "1300.00" {
		t.Errorf("closing = %s, want 1300.00", got)
	}
}

func TestAggregateClosingIdentity(t *testing.T) {
	rows := []core.LedgerRow{
		row("X", "A", "01-01-2024", "123.45", "23.45", nil),
		row("X", "B", "02-01-2024", "999.99", "0.99", nil),
		row("X", "C", "", "10.01", "", nil),
	}
	st, err := Aggregate(rows, "X", Period{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := st.Opening.Add(st.Invoiced).Sub(st.Received)
	if !st.Closing.Equal(want) {
		t.Errorf("closing %s != opening+invoiced-received %s", st.Closing, want)
	}
}

func TestAggregateBlankAmount(t *testing.T) {
	rows := []core.LedgerRow{
		row("X", "INV-1", "01-01-2024", "", "", nil),
		row("X", "INV-2", "02-01-2024", "250.00", "", nil),
	}
	st, err := Aggregate(rows, "X", Period{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(st.Lines) != 2 {
		t.Fatalf("blank row dropped: lines = %d, want 2", len(st.Lines))
	}
	if st.Lines[0].DueAmount != "" {
		t.Errorf("blank due rendered as %q, want empty cell", st.Lines[0].DueAmount)
	}
	if got := st.TotalDue.StringFixed(2); got != "250.00" {
		t.Errorf("total due = %s, want 250.00", got)
	}
}

func TestAggregateAbsentDatesSortLast(t *testing.T) {
	rows := []core.LedgerRow{
		row("X", "NODATE-1", "", "1.00", "", nil),
		row("X", "DATED", "05-01-2024", "2.00", "", nil),
		row("X", "NODATE-2", "garbage", "3.00", "", nil),
	}
	st, err := Aggregate(rows, "X", Period{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	var order []string
	for _, l := range st.Lines {
		order = append(order, l.InvoiceNumber)
	}
	want := []string{"DATED", "NODATE-1", "NODATE-2"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestAggregateAllDatesSentinel(t *testing.T) {
	rows := []core.LedgerRow{
		row("X", "INV-1", "", "1.00", "", nil),
	}
	st, err := Aggregate(rows, "X", Period{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if st.DateRange != AllDates {
		t.Errorf("date range = %q, want %q", st.DateRange, AllDates)
	}
}

func TestAggregateNoMatch(t *testing.T) {
	rows := []core.LedgerRow{
		row("X", "INV-1", "01-01-2024", "1.00", "", nil),
	}
	_, err := Aggregate(rows, "Y", Period{})
	if !errors.Is(err, core.ErrNoRows) {
		t.Errorf("err = %v, want ErrNoRows", err)
	}

	// A window that excludes every row is the same reportable state.
	_, err = Aggregate(rows, "X", Period{From: core.NewDate(2025, 1, 1), To: core.NewDate(2025, 2, 1)})
	if !errors.Is(err, core.ErrNoRows) {
		t.Errorf("err = %v, want ErrNoRows", err)
	}
}

func TestAggregateInvalidPeriod(t *testing.T) {
	rows := []core.LedgerRow{
		row("X", "INV-1", "01-01-2024", "1.00", "", nil),
	}
	_, err := Aggregate(rows, "X", Period{From: core.NewDate(2024, 2, 1), To: core.NewDate(2024, 1, 1)})
	if !errors.Is(err, core.ErrInvalidPeriod) {
		t.Errorf("err = %v, want ErrInvalidPeriod", err)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	rows := []core.LedgerRow{
		row("X", "INV-1", "01-01-2024", "1,000.00", "250.00", "03-01-2024"),
		row("X", "INV-2", "", "500.00", "", nil),
	}
	a, err := Aggregate(rows, "X", Period{})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	b, err := Aggregate(rows, "X", Period{})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated aggregation produced different results")
	}
}

func TestAggregateSourceRowsUntouched(t *testing.T) {
	rows := []core.LedgerRow{
		row("X", "INV-1", "01-01-2024", "1,000.00", "", nil),
	}
	before := rows[0]
	if _, err := Aggregate(rows, "X", Period{}); err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !reflect.DeepEqual(before, rows[0]) {
		t.Error("source row was mutated during aggregation")
	}
}

func TestCustomers(t *testing.T) {
	rows := []core.LedgerRow{
		row("Beta", "1", nil, nil, nil, nil),
		row("alpha", "2", nil, nil, nil, nil),
		row("Beta", "3", nil, nil, nil, nil),
		row("  ", "4", nil, nil, nil, nil),
	}
	got := Customers(rows)
	want := []string{"Beta", "alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Customers = %v, want %v", got, want)
	}
}
