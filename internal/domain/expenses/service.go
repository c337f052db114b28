package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	"github.com/saurabhsolanke/expensify-be/internal/domain/borrowed"
	"github.com/saurabhsolanke/expensify-be/internal/domain/category"
	"github.com/saurabhsolanke/expensify-be/internal/domain/creditcard"
	"github.com/saurabhsolanke/expensify-be/internal/domain/ids"
)

type CategoryLookup interface {
	GetCategory(ctx context.Context, userID, categoryID string) (*category.Category, error)
}

type CardLookup interface {
	GetCard(ctx context.Context, userID, cardID string) (*creditcard.CreditCard, error)
}

type BorrowedLookup interface {
	GetRecord(ctx context.Context, userID, recordID string) (*borrowed.Record, error)
}

type Service struct {
	repo       Repository
	categories CategoryLookup
	cards      CardLookup
	borrowed   BorrowedLookup
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryLookup, cards CardLookup, borrowed BorrowedLookup) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		cards:      cards,
		borrowed:   borrowed,
		now:        time.Now,
	}
}

func (s *Service) ListExpenses(ctx context.Context, userID string, filter ListFilter) ([]Expense, int64, error) {
	if filter.PaymentMode != "" && !filter.PaymentMode.Valid() {
		return nil, 0, apperr.Validation("payment_mode", filter.PaymentMode, "payment_mode must be cash, credit_card or borrowed")
	}
	for _, ref := range []struct {
		field string
		value *string
	}{
		{"category_id", &filter.CategoryID},
		{"credit_card_id", &filter.CreditCardID},
		{"borrowed_id", &filter.BorrowedID},
	} {
		if *ref.value == "" {
			continue
		}
		id, err := ids.Parse(ref.field, *ref.value)
		if err != nil {
			return nil, 0, err
		}
		*ref.value = id
	}
	if filter.MinAmount != nil && filter.MaxAmount != nil && *filter.MinAmount > *filter.MaxAmount {
		return nil, 0, apperr.Validation("min_amount", *filter.MinAmount, "min_amount must not exceed max_amount")
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, apperr.Validation("start_date", filter.From.Format(time.DateOnly), "start_date must not be after end_date")
	}

	expenses, total, err := s.repo.ListExpenses(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	if expenses == nil {
		expenses = []Expense{}
	}
	return expenses, total, nil
}

func (s *Service) GetExpense(ctx context.Context, userID, expenseID string) (*Expense, error) {
	id, err := ids.Parse("expense_id", expenseID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetExpenseByID(ctx, userID, id)
}

func (s *Service) CreateExpense(ctx context.Context, input CreateExpenseInput) (*Expense, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	expense := Expense{
		ID:           ids.New(),
		UserID:       input.UserID,
		Amount:       input.Amount,
		CategoryID:   input.CategoryID,
		PaymentMode:  input.PaymentMode,
		CreditCardID: input.CreditCardID,
		BorrowedID:   input.BorrowedID,
		Note:         trimOptional(input.Note),
		IsRecurring:  input.IsRecurring,
	}
	if input.Date != nil {
		expense.Date = dateOnly(*input.Date)
	} else {
		expense.Date = dateOnly(s.now().UTC())
	}
	if err := applyRecurrence(&expense, input.RecurringFrequency); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, &expense); err != nil {
		return nil, err
	}

	if err := s.repo.CreateExpense(ctx, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *Service) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*Expense, error) {
	expense, err := s.GetExpense(ctx, input.UserID, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		expense.Amount = *input.Amount
	}
	if input.CategoryID != nil {
		expense.CategoryID = *input.CategoryID
	}
	if input.PaymentMode != nil {
		expense.PaymentMode = *input.PaymentMode
	}
	if input.CreditCardID != nil {
		expense.CreditCardID = input.CreditCardID
	}
	if input.BorrowedID != nil {
		expense.BorrowedID = input.BorrowedID
	}
	if input.Date != nil {
		expense.Date = dateOnly(*input.Date)
	}
	if input.Note != nil {
		expense.Note = trimOptional(input.Note)
	}
	if input.IsRecurring != nil {
		expense.IsRecurring = *input.IsRecurring
	}
	frequency := expense.RecurringFrequency
	if input.RecurringFrequency != nil {
		frequency = input.RecurringFrequency
	}
	if err := applyRecurrence(expense, frequency); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, expense); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *Service) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	id, err := ids.Parse("expense_id", expenseID)
	if err != nil {
		return err
	}
	deleted, err := s.repo.DeleteExpense(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

// resolveReferences enforces the payment mode rules and checks that every
// remaining reference is owned by the expense's user. References that do not
// belong to the chosen mode are dropped.
func (s *Service) resolveReferences(ctx context.Context, expense *Expense) error {
	if !expense.PaymentMode.Valid() {
		return apperr.Validation("payment_mode", expense.PaymentMode, "payment_mode must be cash, credit_card or borrowed")
	}

	categoryID, err := ids.Parse("category_id", expense.CategoryID)
	if err != nil {
		return err
	}
	if _, err := s.categories.GetCategory(ctx, expense.UserID, categoryID); err != nil {
		return referenceError(err, ErrInvalidCategory, categoryID)
	}
	expense.CategoryID = categoryID

	switch expense.PaymentMode {
	case PaymentModeCreditCard:
		expense.BorrowedID = nil
		cardID, err := requiredReference("credit_card_id", expense.CreditCardID, "credit_card_id is required for credit_card payment mode")
		if err != nil {
			return err
		}
		if _, err := s.cards.GetCard(ctx, expense.UserID, cardID); err != nil {
			return referenceError(err, ErrInvalidCreditCard, cardID)
		}
		expense.CreditCardID = &cardID
	case PaymentModeBorrowed:
		expense.CreditCardID = nil
		recordID, err := requiredReference("borrowed_id", expense.BorrowedID, "borrowed_id is required for borrowed payment mode")
		if err != nil {
			return err
		}
		if _, err := s.borrowed.GetRecord(ctx, expense.UserID, recordID); err != nil {
			return referenceError(err, ErrInvalidBorrowed, recordID)
		}
		expense.BorrowedID = &recordID
	default:
		expense.CreditCardID = nil
		expense.BorrowedID = nil
	}
	return nil
}

func requiredReference(field string, value *string, message string) (string, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return "", apperr.Validation(field, nil, message)
	}
	return ids.Parse(field, *value)
}

// referenceError turns a failed owned lookup into the reference error of the
// field. Anything other than not-found is passed through.
func referenceError(err error, sentinel *apperr.Error, id string) error {
	if apperr.KindOf(err) == apperr.KindNotFound {
		return fmt.Errorf("%s: %w", id, sentinel)
	}
	return err
}

func applyRecurrence(expense *Expense, frequency *Frequency) error {
	if !expense.IsRecurring {
		expense.RecurringFrequency = nil
		return nil
	}
	if frequency == nil {
		return apperr.Validation("recurring_frequency", nil, "recurring_frequency is required for recurring expenses")
	}
	if !frequency.Valid() {
		return apperr.Validation("recurring_frequency", *frequency, "recurring_frequency must be daily, weekly, monthly or yearly")
	}
	value := *frequency
	expense.RecurringFrequency = &value
	return nil
}

func validateAmount(value float64) error {
	if decimal.NewFromFloat(value).Round(2).LessThanOrEqual(decimal.Zero) {
		return apperr.Validation("amount", value, "amount must be greater than 0")
	}
	return nil
}

func dateOnly(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
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
