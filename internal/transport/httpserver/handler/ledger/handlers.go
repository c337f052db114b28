package ledger

import (
	"context"

	"github.com/saurabhsolanke/expensify-be/internal/config"
	analyticsdomain "github.com/saurabhsolanke/expensify-be/internal/domain/analytics"
	borroweddomain "github.com/saurabhsolanke/expensify-be/internal/domain/borrowed"
	creditcarddomain "github.com/saurabhsolanke/expensify-be/internal/domain/creditcard"
	paymentdomain "github.com/saurabhsolanke/expensify-be/internal/domain/payment"
	"github.com/saurabhsolanke/expensify-be/pkg/logger"
)

type CardService interface {
	ListCards(ctx context.Context, userID string, filter creditcarddomain.ListFilter) ([]creditcarddomain.CreditCard, int64, error)
	GetCard(ctx context.Context, userID, cardID string) (*creditcarddomain.CreditCard, error)
	CreateCard(ctx context.Context, input creditcarddomain.CreateInput) (*creditcarddomain.CreditCard, error)
	UpdateCard(ctx context.Context, input creditcarddomain.UpdateInput) (*creditcarddomain.CreditCard, error)
	DeleteCard(ctx context.Context, userID, cardID string) error
}

type BorrowedService interface {
	ListRecords(ctx context.Context, userID string, filter borroweddomain.ListFilter) ([]borroweddomain.Record, int64, error)
	GetRecord(ctx context.Context, userID, recordID string) (*borroweddomain.Record, error)
	CreateRecord(ctx context.Context, input borroweddomain.CreateInput) (*borroweddomain.Record, error)
	UpdateRecord(ctx context.Context, input borroweddomain.UpdateInput) (*borroweddomain.Record, error)
	DeleteRecord(ctx context.Context, userID, recordID string) error
	Overdue(ctx context.Context, userID string) ([]borroweddomain.OverdueItem, error)
}

type PaymentService interface {
	ListPayments(ctx context.Context, userID string, filter paymentdomain.ListFilter) ([]paymentdomain.Payment, int64, error)
	ListForRecord(ctx context.Context, userID, recordID string, filter paymentdomain.ListFilter) ([]paymentdomain.Payment, int64, error)
	GetPayment(ctx context.Context, userID, paymentID string) (*paymentdomain.Payment, error)
	CreatePayment(ctx context.Context, input paymentdomain.CreateInput) (*paymentdomain.Payment, error)
	Repay(ctx context.Context, input paymentdomain.RepayInput) (*paymentdomain.Payment, *borroweddomain.Record, error)
	UpdatePayment(ctx context.Context, input paymentdomain.UpdateInput) (*paymentdomain.Payment, error)
	DeletePayment(ctx context.Context, userID, paymentID string) error
}

type SummaryService interface {
	CreditCardSummary(ctx context.Context, card *creditcarddomain.CreditCard) (analyticsdomain.CardSummary, error)
	PaymentTotals(ctx context.Context, userID string, r analyticsdomain.DateRange) (analyticsdomain.PaymentTotals, error)
	BorrowedTotals(ctx context.Context, userID string, r analyticsdomain.DateRange) (analyticsdomain.BorrowedTotals, error)
}

type Handlers struct {
	Cards      CardService
	Borrowed   BorrowedService
	Payments   PaymentService
	Summaries  SummaryService
	pagination config.PaginationConfig
	log        logger.Logger
}

func New(cards CardService, borrowed BorrowedService, payments PaymentService, summaries SummaryService, pagination config.PaginationConfig, log logger.Logger) *Handlers {
	return &Handlers{
		Cards:      cards,
		Borrowed:   borrowed,
		Payments:   payments,
		Summaries:  summaries,
		pagination: pagination,
		log:        log,
	}
}
