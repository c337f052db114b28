package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	"github.com/saurabhsolanke/expensify-be/internal/domain/borrowed"
	"github.com/saurabhsolanke/expensify-be/internal/domain/creditcard"
	"github.com/saurabhsolanke/expensify-be/internal/domain/ids"
)

type CardLookup interface {
	GetCard(ctx context.Context, userID, cardID string) (*creditcard.CreditCard, error)
}

// Ledger is the borrowed-money side of reconciliation.
type Ledger interface {
	GetRecord(ctx context.Context, userID, recordID string) (*borrowed.Record, error)
	Repay(ctx context.Context, userID, recordID string, amount float64, persist func(*borrowed.Record) error) (*borrowed.Record, error)
	ApplyRepayment(ctx context.Context, userID, recordID string, amount float64) (*borrowed.Record, error)
	RecomputeRepaid(ctx context.Context, userID, recordID string) (*borrowed.Record, error)
}

// referenceResolver confirms that a referenced entity exists for the user.
type referenceResolver func(ctx context.Context, userID, id string) error

type Service struct {
	repo      Repository
	ledger    Ledger
	resolvers map[Type]referenceResolver
	now       func() time.Time
}

func NewService(repo Repository, cards CardLookup, ledger Ledger) *Service {
	return &Service{
		repo:   repo,
		ledger: ledger,
		resolvers: map[Type]referenceResolver{
			TypeCreditCard: func(ctx context.Context, userID, id string) error {
				_, err := cards.GetCard(ctx, userID, id)
				return err
			},
			TypeBorrowed: func(ctx context.Context, userID, id string) error {
				_, err := ledger.GetRecord(ctx, userID, id)
				return err
			},
		},
		now: time.Now,
	}
}

func (s *Service) ListPayments(ctx context.Context, userID string, filter ListFilter) ([]Payment, int64, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, apperr.Validation("type", filter.Type, "type must be credit_card or borrowed")
	}
	if filter.ReferenceID != "" {
		id, err := ids.Parse("reference_id", filter.ReferenceID)
		if err != nil {
			return nil, 0, err
		}
		filter.ReferenceID = id
	}

	payments, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	if payments == nil {
		payments = []Payment{}
	}
	return payments, total, nil
}

// ListForRecord returns the repayment history of one borrowed record.
func (s *Service) ListForRecord(ctx context.Context, userID, recordID string, filter ListFilter) ([]Payment, int64, error) {
	record, err := s.ledger.GetRecord(ctx, userID, recordID)
	if err != nil {
		return nil, 0, err
	}
	filter.Type = TypeBorrowed
	filter.ReferenceID = record.ID
	return s.ListPayments(ctx, userID, filter)
}

func (s *Service) GetPayment(ctx context.Context, userID, paymentID string) (*Payment, error) {
	id, err := ids.Parse("payment_id", paymentID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) CreatePayment(ctx context.Context, input CreateInput) (*Payment, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	ref, err := s.resolveReference(ctx, input.UserID, input.Reference)
	if err != nil {
		return nil, err
	}

	payment := Payment{
		ID:            ids.New(),
		UserID:        input.UserID,
		Type:          ref.Type,
		ReferenceID:   ref.ID,
		Amount:        input.Amount,
		PaymentDate:   s.dateOrToday(input.PaymentDate),
		PaymentMethod: trimOptional(input.Method),
		Note:          trimOptional(input.Note),
	}
	if err := s.repo.Create(ctx, &payment); err != nil {
		return nil, err
	}

	if payment.Type == TypeBorrowed {
		if _, err := s.ledger.ApplyRepayment(ctx, input.UserID, payment.ReferenceID, payment.Amount); err != nil {
			return nil, fmt.Errorf("reconcile borrowed record %s: %w", payment.ReferenceID, err)
		}
	}
	return &payment, nil
}

// Repay records a repayment against a borrowed record. Unlike CreatePayment it
// refuses amounts above the remaining balance; the check and the payment
// insert happen while the record is locked.
func (s *Service) Repay(ctx context.Context, input RepayInput) (*Payment, *borrowed.Record, error) {
	var payment Payment
	updated, err := s.ledger.Repay(ctx, input.UserID, input.BorrowedID, input.Amount, func(record *borrowed.Record) error {
		payment = Payment{
			ID:            ids.New(),
			UserID:        input.UserID,
			Type:          TypeBorrowed,
			ReferenceID:   record.ID,
			Amount:        input.Amount,
			PaymentDate:   s.dateOrToday(input.PaymentDate),
			PaymentMethod: trimOptional(input.Method),
			Note:          trimOptional(input.Note),
		}
		return s.repo.Create(ctx, &payment)
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, updated, nil
}

func (s *Service) UpdatePayment(ctx context.Context, input UpdateInput) (*Payment, error) {
	payment, err := s.GetPayment(ctx, input.UserID, input.PaymentID)
	if err != nil {
		return nil, err
	}
	previous := payment.Reference()

	if input.Reference != nil {
		ref, err := s.resolveReference(ctx, input.UserID, *input.Reference)
		if err != nil {
			return nil, err
		}
		payment.Type = ref.Type
		payment.ReferenceID = ref.ID
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		payment.Amount = *input.Amount
	}
	if input.PaymentDate != nil {
		payment.PaymentDate = dateOnly(*input.PaymentDate)
	}
	if input.Method != nil {
		payment.PaymentMethod = trimOptional(input.Method)
	}
	if input.Note != nil {
		payment.Note = trimOptional(input.Note)
	}

	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.recompute(ctx, input.UserID, previous, payment.Reference()); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) DeletePayment(ctx context.Context, userID, paymentID string) error {
	payment, err := s.GetPayment(ctx, userID, paymentID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, userID, payment.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPaymentNotFound
	}

	return s.recompute(ctx, userID, payment.Reference())
}

// recompute re-derives every distinct borrowed record among refs from its
// remaining payment history.
func (s *Service) recompute(ctx context.Context, userID string, refs ...Reference) error {
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if ref.Type != TypeBorrowed {
			continue
		}
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		if _, err := s.ledger.RecomputeRepaid(ctx, userID, ref.ID); err != nil {
			return fmt.Errorf("reconcile borrowed record %s: %w", ref.ID, err)
		}
	}
	return nil
}

func (s *Service) resolveReference(ctx context.Context, userID string, ref Reference) (Reference, error) {
	resolve, ok := s.resolvers[ref.Type]
	if !ok {
		return Reference{}, apperr.Validation("type", ref.Type, "type must be credit_card or borrowed")
	}
	id, err := ids.Parse("reference_id", ref.ID)
	if err != nil {
		return Reference{}, err
	}

	if err := resolve(ctx, userID, id); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return Reference{}, fmt.Errorf("%s %s: %w", ref.Type, id, ErrInvalidReference)
		}
		return Reference{}, err
	}
	return Reference{Type: ref.Type, ID: id}, nil
}

func (s *Service) dateOrToday(value *time.Time) time.Time {
	if value != nil {
		return dateOnly(*value)
	}
	return dateOnly(s.now().UTC())
}

func dateOnly(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

func validateAmount(value float64) error {
	if decimal.NewFromFloat(value).Round(2).LessThanOrEqual(decimal.Zero) {
		return apperr.Validation("amount", value, "amount must be greater than 0")
	}
	return nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

