package category

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	List(ctx context.Context, userID string) ([]Category, error)
	GetByID(ctx context.Context, userID, categoryID string) (*Category, error)
	Create(ctx context.Context, category *Category) error
	CreateMany(ctx context.Context, categories []Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, userID, categoryID string) (bool, error)
	CountByName(ctx context.Context, userID, name, excludeID string) (int64, error)
	CountDefaults(ctx context.Context, userID string) (int64, error)
	CountExpenses(ctx context.Context, userID, categoryID string) (int64, error)
}
