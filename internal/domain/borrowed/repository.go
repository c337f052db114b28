package borrowed

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	List(ctx context.Context, userID string, filter ListFilter) ([]Record, int64, error)
	ListByStatus(ctx context.Context, userID string, statuses []Status) ([]Record, error)
	GetByID(ctx context.Context, userID, recordID string) (*Record, error)
	// GetByIDForUpdate must lock the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, userID, recordID string) (*Record, error)
	Create(ctx context.Context, record *Record) error
	Update(ctx context.Context, record *Record) error
	UpdateLedger(ctx context.Context, record *Record) error
	Delete(ctx context.Context, userID, recordID string) (bool, error)
	CountPayments(ctx context.Context, userID, recordID string) (int64, error)
	CountExpenses(ctx context.Context, userID, recordID string) (int64, error)
	ListPaymentAmounts(ctx context.Context, userID, recordID string) ([]float64, error)
}
