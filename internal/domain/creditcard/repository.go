package creditcard

import "context"

type Repository interface {
	List(ctx context.Context, userID string, filter ListFilter) ([]CreditCard, int64, error)
	GetByID(ctx context.Context, userID, cardID string) (*CreditCard, error)
	Create(ctx context.Context, card *CreditCard) error
	Update(ctx context.Context, card *CreditCard) error
	Delete(ctx context.Context, userID, cardID string) (bool, error)
	CountExpenses(ctx context.Context, userID, cardID string) (int64, error)
}
