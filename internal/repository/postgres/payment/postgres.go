package payment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	paymentdomain "github.com/saurabhsolanke/expensify-be/internal/domain/payment"
)

var paymentSortColumns = map[string]string{
	"date":       "payment_date",
	"amount":     "amount",
	"created_at": "created_at",
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter paymentdomain.ListFilter) ([]paymentdomain.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&paymentdomain.Payment{}).Where("user_id = ?", userID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ReferenceID != "" {
		query = query.Where("reference_id = ?", filter.ReferenceID)
	}
	if filter.From != nil {
		query = query.Where("payment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("payment_date <= ?", *filter.To)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(filter.OrderClause(paymentSortColumns, "payment_date")).Order("created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if offset := filter.Offset(); offset > 0 {
		query = query.Offset(offset)
	}

	var items []paymentdomain.Payment
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, paymentID string) (*paymentdomain.Payment, error) {
	var payment paymentdomain.Payment
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, paymentID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paymentdomain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PostgresRepository) Create(ctx context.Context, payment *paymentdomain.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PostgresRepository) Update(ctx context.Context, payment *paymentdomain.Payment) error {
	return r.db.WithContext(ctx).
		Model(&paymentdomain.Payment{}).
		Where("id = ? AND user_id = ?", payment.ID, payment.UserID).
		Updates(map[string]interface{}{
			"type":           payment.Type,
			"reference_id":   payment.ReferenceID,
			"amount":         payment.Amount,
			"payment_date":   payment.PaymentDate,
			"payment_method": payment.PaymentMethod,
			"note":           payment.Note,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, paymentID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&paymentdomain.Payment{}, "user_id = ? AND id = ?", userID, paymentID)
	return result.RowsAffected > 0, result.Error
}
