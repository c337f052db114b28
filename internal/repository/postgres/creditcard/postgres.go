package creditcard

import (
	"context"
	"errors"

	"gorm.io/gorm"

	carddomain "github.com/saurabhsolanke/expensify-be/internal/domain/creditcard"
)

var cardSortColumns = map[string]string{
	"created_at": "created_at",
	"bank_name":  "bank_name",
	"due_date":   "due_date",
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter carddomain.ListFilter) ([]carddomain.CreditCard, int64, error) {
	query := r.db.WithContext(ctx).Model(&carddomain.CreditCard{}).Where("user_id = ?", userID)
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(filter.OrderClause(cardSortColumns, "created_at"))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if offset := filter.Offset(); offset > 0 {
		query = query.Offset(offset)
	}

	var items []carddomain.CreditCard
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, cardID string) (*carddomain.CreditCard, error) {
	var card carddomain.CreditCard
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, cardID).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, carddomain.ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *PostgresRepository) Create(ctx context.Context, card *carddomain.CreditCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *PostgresRepository) Update(ctx context.Context, card *carddomain.CreditCard) error {
	return r.db.WithContext(ctx).
		Model(&carddomain.CreditCard{}).
		Where("id = ? AND user_id = ?", card.ID, card.UserID).
		Updates(map[string]interface{}{
			"bank_name":    card.BankName,
			"card_number":  card.CardNumber,
			"card_type":    card.CardType,
			"limit_amount": card.LimitAmount,
			"due_date":     card.DueDate,
			"is_active":    card.IsActive,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, cardID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&carddomain.CreditCard{}, "user_id = ? AND id = ?", userID, cardID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountExpenses(ctx context.Context, userID, cardID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Where("user_id = ? AND credit_card_id = ?", userID, cardID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
