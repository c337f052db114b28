package analytics

import (
	"context"
	"time"
)

type Repository interface {
	ExpenseTotals(ctx context.Context, userID string, r DateRange) (Totals, error)
	ExpensesByCategory(ctx context.Context, userID string, r DateRange) ([]CategoryTotal, error)
	ExpensesByPaymentMode(ctx context.Context, userID string, r DateRange) ([]PaymentModeTotal, error)
	// MonthlyTrend returns at most limit buckets, the most recent ones.
	MonthlyTrend(ctx context.Context, userID string, r DateRange, limit int) ([]MonthTotal, error)
	CardExpenseTotals(ctx context.Context, userID, cardID string, from, to time.Time) (Totals, error)
	// LastCardPayment returns nil when the card has no payments.
	LastCardPayment(ctx context.Context, userID, cardID string) (*LastPayment, error)
	PaymentTotalsByType(ctx context.Context, userID string, r DateRange) ([]TypeRow, error)
	BorrowedTotalsByType(ctx context.Context, userID string, r DateRange) ([]DirectionRow, error)
}
