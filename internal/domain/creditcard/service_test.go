package creditcard

import (
	"context"
	"errors"
	"testing"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
)

const (
	userA = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	userB = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
)

type fakeCardsRepo struct {
	cards         map[string]*CreditCard
	expenseCounts map[string]int64
}

func newFakeCardsRepo() *fakeCardsRepo {
	return &fakeCardsRepo{
		cards:         make(map[string]*CreditCard),
		expenseCounts: make(map[string]int64),
	}
}

func (r *fakeCardsRepo) List(ctx context.Context, userID string, filter ListFilter) ([]CreditCard, int64, error) {
	var items []CreditCard
	for _, card := range r.cards {
		if card.UserID != userID {
			continue
		}
		if filter.IsActive != nil && card.IsActive != *filter.IsActive {
			continue
		}
		items = append(items, *card)
	}
	return items, int64(len(items)), nil
}

func (r *fakeCardsRepo) GetByID(ctx context.Context, userID, cardID string) (*CreditCard, error) {
	card, ok := r.cards[cardID]
	if !ok || card.UserID != userID {
		return nil, ErrCardNotFound
	}
	copied := *card
	return &copied, nil
}

func (r *fakeCardsRepo) Create(ctx context.Context, card *CreditCard) error {
	copied := *card
	r.cards[card.ID] = &copied
	return nil
}

func (r *fakeCardsRepo) Update(ctx context.Context, card *CreditCard) error {
	copied := *card
	r.cards[card.ID] = &copied
	return nil
}

func (r *fakeCardsRepo) Delete(ctx context.Context, userID, cardID string) (bool, error) {
	card, ok := r.cards[cardID]
	if !ok || card.UserID != userID {
		return false, nil
	}
	delete(r.cards, cardID)
	return true, nil
}

func (r *fakeCardsRepo) CountExpenses(ctx context.Context, userID, cardID string) (int64, error) {
	return r.expenseCounts[cardID], nil
}

func validInput() CreateInput {
	limit := 50000.0
	return CreateInput{
		UserID:      userA,
		BankName:    " HDFC ",
		CardNumber:  "1234",
		LimitAmount: &limit,
		DueDate:     15,
	}
}

func TestCreateCardSuccess(t *testing.T) {
	repo := newFakeCardsRepo()
	svc := NewService(repo)

	card, err := svc.CreateCard(context.Background(), validInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if card.BankName != "HDFC" || !card.IsActive || card.DueDate != 15 {
		t.Fatalf("unexpected card %+v", card)
	}
	if repo.cards[card.ID] == nil {
		t.Fatalf("card not stored")
	}
}

func TestCreateCardValidation(t *testing.T) {
	svc := NewService(newFakeCardsRepo())
	ctx := context.Background()

	cases := map[string]func(*CreateInput){
		"due date zero":      func(in *CreateInput) { in.DueDate = 0 },
		"due date 32":        func(in *CreateInput) { in.DueDate = 32 },
		"card number short":  func(in *CreateInput) { in.CardNumber = "123" },
		"card number letter": func(in *CreateInput) { in.CardNumber = "12a4" },
		"bank name missing":  func(in *CreateInput) { in.BankName = "" },
		"negative limit": func(in *CreateInput) {
			limit := -1.0
			in.LimitAmount = &limit
		},
	}

	for name, mutate := range cases {
		input := validInput()
		mutate(&input)
		_, err := svc.CreateCard(ctx, input)
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}

	for _, day := range []int{1, 31} {
		input := validInput()
		input.DueDate = day
		if _, err := svc.CreateCard(ctx, input); err != nil {
			t.Fatalf("due date %d: expected no error, got %v", day, err)
		}
	}
}

func TestUpdateCardPartialAndClearLimit(t *testing.T) {
	repo := newFakeCardsRepo()
	svc := NewService(repo)
	ctx := context.Background()

	card, _ := svc.CreateCard(ctx, validInput())
	inactive := false
	due := 3

	updated, err := svc.UpdateCard(ctx, UpdateInput{
		UserID:      userA,
		CardID:      card.ID,
		DueDate:     &due,
		IsActive:    &inactive,
		LimitAmount: OptionalFloat{Set: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.DueDate != 3 || updated.IsActive || updated.LimitAmount != nil || updated.BankName != "HDFC" {
		t.Fatalf("unexpected card %+v", updated)
	}

	bad := 40
	if _, err := svc.UpdateCard(ctx, UpdateInput{UserID: userA, CardID: card.ID, DueDate: &bad}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteCardBlockedByExpenses(t *testing.T) {
	repo := newFakeCardsRepo()
	svc := NewService(repo)
	ctx := context.Background()

	card, _ := svc.CreateCard(ctx, validInput())
	repo.expenseCounts[card.ID] = 1

	if err := svc.DeleteCard(ctx, userA, card.ID); !errors.Is(err, ErrCardInUse) {
		t.Fatalf("expected ErrCardInUse, got %v", err)
	}

	repo.expenseCounts[card.ID] = 0
	if err := svc.DeleteCard(ctx, userA, card.ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
}

func TestGetCardOwnership(t *testing.T) {
	repo := newFakeCardsRepo()
	svc := NewService(repo)
	ctx := context.Background()

	card, _ := svc.CreateCard(ctx, validInput())
	if _, err := svc.GetCard(ctx, userB, card.ID); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
	if _, err := svc.GetCard(ctx, userA, "xyz"); apperr.KindOf(err) != apperr.KindInvalidFormat {
		t.Fatalf("expected invalid format, got %v", err)
	}
}
