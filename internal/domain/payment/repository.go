package payment

import "context"

type Repository interface {
	List(ctx context.Context, userID string, filter ListFilter) ([]Payment, int64, error)
	GetByID(ctx context.Context, userID, paymentID string) (*Payment, error)
	Create(ctx context.Context, payment *Payment) error
	Update(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, userID, paymentID string) (bool, error)
}
