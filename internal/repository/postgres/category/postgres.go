package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	categorydomain "github.com/saurabhsolanke/expensify-be/internal/domain/category"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(categorydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]categorydomain.Category, error) {
	var items []categorydomain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default desc, lower(name) asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, categoryID string) (*categorydomain.Category, error) {
	var category categorydomain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, categoryID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categorydomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) Create(ctx context.Context, category *categorydomain.Category) error {
	return mapWriteError(r.db.WithContext(ctx).Create(category).Error)
}

func (r *PostgresRepository) CreateMany(ctx context.Context, categories []categorydomain.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return mapWriteError(r.db.WithContext(ctx).Create(&categories).Error)
}

func (r *PostgresRepository) Update(ctx context.Context, category *categorydomain.Category) error {
	result := r.db.WithContext(ctx).
		Model(&categorydomain.Category{}).
		Where("id = ? AND user_id = ?", category.ID, category.UserID).
		Updates(map[string]interface{}{
			"name":  category.Name,
			"color": category.Color,
			"icon":  category.Icon,
		})
	if result.Error != nil {
		return mapWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return categorydomain.ErrCategoryNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, categoryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&categorydomain.Category{}, "user_id = ? AND id = ?", userID, categoryID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountByName(ctx context.Context, userID, name, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&categorydomain.Category{}).
		Where("user_id = ? AND lower(name) = lower(?)", userID, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountDefaults(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&categorydomain.Category{}).
		Where("user_id = ? AND is_default", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountExpenses(ctx context.Context, userID, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// mapWriteError turns a race on the (user_id, lower(name)) index into the
// same conflict the service reports.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return categorydomain.ErrCategoryNameTaken
	}
	return err
}
