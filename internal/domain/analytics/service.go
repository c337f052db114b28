package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	"github.com/saurabhsolanke/expensify-be/internal/domain/creditcard"
)

const trendMonths = 12

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ExpenseSummary runs the four expense aggregations concurrently. An empty
// range yields zero totals and empty breakdowns.
func (s *Service) ExpenseSummary(ctx context.Context, userID string, r DateRange) (ExpenseSummary, error) {
	if err := validateRange(r); err != nil {
		return ExpenseSummary{}, err
	}

	var (
		totals  Totals
		byCat   []CategoryTotal
		byMode  []PaymentModeTotal
		monthly []MonthTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.repo.ExpenseTotals(gctx, userID, r)
		return err
	})
	g.Go(func() error {
		var err error
		byCat, err = s.repo.ExpensesByCategory(gctx, userID, r)
		return err
	})
	g.Go(func() error {
		var err error
		byMode, err = s.repo.ExpensesByPaymentMode(gctx, userID, r)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = s.repo.MonthlyTrend(gctx, userID, r, trendMonths)
		return err
	})
	if err := g.Wait(); err != nil {
		return ExpenseSummary{}, err
	}

	if byCat == nil {
		byCat = []CategoryTotal{}
	}
	if byMode == nil {
		byMode = []PaymentModeTotal{}
	}

	return ExpenseSummary{
		TotalAmount:   totals.Amount,
		TotalCount:    totals.Count,
		ByCategory:    byCat,
		ByPaymentMode: byMode,
		MonthlyTrend:  chronologicalTrend(monthly),
	}, nil
}

// CreditCardSummary reports the current calendar month of the card.
func (s *Service) CreditCardSummary(ctx context.Context, card *creditcard.CreditCard) (CardSummary, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	totals, err := s.repo.CardExpenseTotals(ctx, card.UserID, card.ID, monthStart, monthEnd)
	if err != nil {
		return CardSummary{}, err
	}
	last, err := s.repo.LastCardPayment(ctx, card.UserID, card.ID)
	if err != nil {
		return CardSummary{}, err
	}

	summary := CardSummary{
		MonthStart:  monthStart,
		MonthEnd:    monthEnd,
		MonthTotal:  totals.Amount,
		MonthCount:  totals.Count,
		LastPayment: last,
	}
	if card.LimitAmount != nil {
		available := decimal.NewFromFloat(*card.LimitAmount).
			Sub(decimal.NewFromFloat(totals.Amount)).
			Round(2).
			InexactFloat64()
		summary.AvailableLimit = &available
	}
	return summary, nil
}

// PaymentTotals groups payments by type; both types are always reported.
func (s *Service) PaymentTotals(ctx context.Context, userID string, r DateRange) (PaymentTotals, error) {
	if err := validateRange(r); err != nil {
		return PaymentTotals{}, err
	}
	rows, err := s.repo.PaymentTotalsByType(ctx, userID, r)
	if err != nil {
		return PaymentTotals{}, err
	}

	var result PaymentTotals
	for _, row := range rows {
		totals := Totals{Amount: row.Amount, Count: row.Count}
		switch row.Type {
		case "credit_card":
			result.CreditCard = totals
		case "borrowed":
			result.Borrowed = totals
		}
	}
	return result, nil
}

// BorrowedTotals groups records by direction; both directions are always
// reported.
func (s *Service) BorrowedTotals(ctx context.Context, userID string, r DateRange) (BorrowedTotals, error) {
	if err := validateRange(r); err != nil {
		return BorrowedTotals{}, err
	}
	rows, err := s.repo.BorrowedTotalsByType(ctx, userID, r)
	if err != nil {
		return BorrowedTotals{}, err
	}

	var result BorrowedTotals
	for _, row := range rows {
		totals := DirectionTotals{
			Amount:    row.Amount,
			Repaid:    row.Repaid,
			Remaining: decimal.NewFromFloat(row.Amount).Sub(decimal.NewFromFloat(row.Repaid)).Round(2).InexactFloat64(),
			Count:     row.Count,
		}
		switch row.Type {
		case "borrowed":
			result.Borrowed = totals
		case "lent":
			result.Lent = totals
		}
	}
	return result, nil
}

// chronologicalTrend keeps the most recent buckets in ascending month order.
func chronologicalTrend(rows []MonthTotal) []MonthTotal {
	trend := make([]MonthTotal, len(rows))
	copy(trend, rows)
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Month < trend[j].Month
	})
	if len(trend) > trendMonths {
		trend = trend[len(trend)-trendMonths:]
	}
	return trend
}

func validateRange(r DateRange) error {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return apperr.Validation("start_date", r.From.Format(time.DateOnly), "start_date must not be after end_date")
	}
	return nil
}
