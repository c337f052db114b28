package analytics

import "time"

// DateRange is an optional inclusive range of calendar days.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

type Totals struct {
	Amount float64
	Count  int64
}

type CategoryTotal struct {
	CategoryID string
	Name       string
	Color      string
	Icon       string
	Total      float64
	Count      int64
}

type PaymentModeTotal struct {
	PaymentMode string
	Total       float64
	Count       int64
}

// MonthTotal is one bucket of the monthly trend. Month is formatted YYYY-MM.
type MonthTotal struct {
	Month string
	Total float64
	Count int64
}

type ExpenseSummary struct {
	TotalAmount   float64
	TotalCount    int64
	ByCategory    []CategoryTotal
	ByPaymentMode []PaymentModeTotal
	MonthlyTrend  []MonthTotal
}

type LastPayment struct {
	ID            string
	Amount        float64
	PaymentDate   time.Time
	PaymentMethod *string
}

type CardSummary struct {
	MonthStart     time.Time
	MonthEnd       time.Time
	MonthTotal     float64
	MonthCount     int64
	LastPayment    *LastPayment
	AvailableLimit *float64
}

type PaymentTotals struct {
	CreditCard Totals
	Borrowed   Totals
}

type DirectionTotals struct {
	Amount    float64
	Repaid    float64
	Remaining float64
	Count     int64
}

type BorrowedTotals struct {
	Borrowed DirectionTotals
	Lent     DirectionTotals
}

// DirectionRow is one grouped row of borrowed_money as read from the store.
type DirectionRow struct {
	Type   string
	Amount float64
	Repaid float64
	Count  int64
}

// TypeRow is one grouped row of payments as read from the store.
type TypeRow struct {
	Type   string
	Amount float64
	Count  int64
}
