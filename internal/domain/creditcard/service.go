package creditcard

import (
	"context"
	"strings"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	"github.com/saurabhsolanke/expensify-be/internal/domain/ids"
)

const (
	minDueDate = 1
	maxDueDate = 31
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCards(ctx context.Context, userID string, filter ListFilter) ([]CreditCard, int64, error) {
	cards, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	if cards == nil {
		cards = []CreditCard{}
	}
	return cards, total, nil
}

// GetCard returns the card only when userID owns it.
func (s *Service) GetCard(ctx context.Context, userID, cardID string) (*CreditCard, error) {
	id, err := ids.Parse("credit_card_id", cardID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) CreateCard(ctx context.Context, input CreateInput) (*CreditCard, error) {
	bankName, err := validateBankName(input.BankName)
	if err != nil {
		return nil, err
	}
	cardNumber, err := validateCardNumber(input.CardNumber)
	if err != nil {
		return nil, err
	}
	if err := validateDueDate(input.DueDate); err != nil {
		return nil, err
	}
	if err := validateLimit(input.LimitAmount); err != nil {
		return nil, err
	}

	card := CreditCard{
		ID:          ids.New(),
		UserID:      input.UserID,
		BankName:    bankName,
		CardNumber:  cardNumber,
		CardType:    trimOptional(input.CardType),
		LimitAmount: input.LimitAmount,
		DueDate:     input.DueDate,
		IsActive:    true,
	}
	if input.IsActive != nil {
		card.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *Service) UpdateCard(ctx context.Context, input UpdateInput) (*CreditCard, error) {
	card, err := s.GetCard(ctx, input.UserID, input.CardID)
	if err != nil {
		return nil, err
	}

	if input.BankName != nil {
		bankName, err := validateBankName(*input.BankName)
		if err != nil {
			return nil, err
		}
		card.BankName = bankName
	}
	if input.CardNumber != nil {
		cardNumber, err := validateCardNumber(*input.CardNumber)
		if err != nil {
			return nil, err
		}
		card.CardNumber = cardNumber
	}
	if input.CardType != nil {
		card.CardType = trimOptional(input.CardType)
	}
	if input.LimitAmount.Set {
		if err := validateLimit(input.LimitAmount.Value); err != nil {
			return nil, err
		}
		card.LimitAmount = input.LimitAmount.Value
	}
	if input.DueDate != nil {
		if err := validateDueDate(*input.DueDate); err != nil {
			return nil, err
		}
		card.DueDate = *input.DueDate
	}
	if input.IsActive != nil {
		card.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Service) DeleteCard(ctx context.Context, userID, cardID string) error {
	card, err := s.GetCard(ctx, userID, cardID)
	if err != nil {
		return err
	}

	inUse, err := s.repo.CountExpenses(ctx, userID, card.ID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCardInUse
	}

	deleted, err := s.repo.Delete(ctx, userID, card.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCardNotFound
	}
	return nil
}

func validateBankName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return "", apperr.Validation("bank_name", value, "bank_name is required")
	}
	return name, nil
}

func validateCardNumber(value string) (string, error) {
	number := strings.TrimSpace(value)
	if len(number) != 4 {
		return "", apperr.Validation("card_number", value, "card_number must be exactly 4 digits")
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return "", apperr.Validation("card_number", value, "card_number must be exactly 4 digits")
		}
	}
	return number, nil
}

func validateDueDate(value int) error {
	if value < minDueDate || value > maxDueDate {
		return apperr.Validation("due_date", value, "due_date must be between 1 and 31")
	}
	return nil
}

func validateLimit(value *float64) error {
	if value != nil && *value < 0 {
		return apperr.Validation("limit_amount", *value, "limit_amount must not be negative")
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
