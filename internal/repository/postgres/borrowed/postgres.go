package borrowed

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	borroweddomain "github.com/saurabhsolanke/expensify-be/internal/domain/borrowed"
)

var recordSortColumns = map[string]string{
	"created_at": "created_at",
	"amount":     "amount",
	"due_date":   "due_date",
	"name":       "name",
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(borroweddomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter borroweddomain.ListFilter) ([]borroweddomain.Record, int64, error) {
	query := r.db.WithContext(ctx).Model(&borroweddomain.Record{}).Where("user_id = ?", userID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(filter.OrderClause(recordSortColumns, "created_at"))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if offset := filter.Offset(); offset > 0 {
		query = query.Offset(offset)
	}

	var items []borroweddomain.Record
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, userID string, statuses []borroweddomain.Status) ([]borroweddomain.Record, error) {
	var items []borroweddomain.Record
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, recordID string) (*borroweddomain.Record, error) {
	return r.get(r.db.WithContext(ctx), userID, recordID)
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, userID, recordID string) (*borroweddomain.Record, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID, recordID)
}

func (r *PostgresRepository) get(query *gorm.DB, userID, recordID string) (*borroweddomain.Record, error) {
	var record borroweddomain.Record
	if err := query.
		Where("user_id = ? AND id = ?", userID, recordID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borroweddomain.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record *borroweddomain.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) Update(ctx context.Context, record *borroweddomain.Record) error {
	return r.db.WithContext(ctx).
		Model(&borroweddomain.Record{}).
		Where("id = ? AND user_id = ?", record.ID, record.UserID).
		Updates(map[string]interface{}{
			"name":          record.Name,
			"phone":         record.Phone,
			"amount":        record.Amount,
			"type":          record.Type,
			"repaid_amount": record.RepaidAmount,
			"status":        record.Status,
			"due_date":      record.DueDate,
			"note":          record.Note,
		}).Error
}

func (r *PostgresRepository) UpdateLedger(ctx context.Context, record *borroweddomain.Record) error {
	return r.db.WithContext(ctx).
		Model(&borroweddomain.Record{}).
		Where("id = ? AND user_id = ?", record.ID, record.UserID).
		Updates(map[string]interface{}{
			"repaid_amount": record.RepaidAmount,
			"status":        record.Status,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, recordID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&borroweddomain.Record{}, "user_id = ? AND id = ?", userID, recordID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountPayments(ctx context.Context, userID, recordID string) (int64, error) {
	var count int64
	if err := r.paymentsOf(ctx, userID, recordID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountExpenses(ctx context.Context, userID, recordID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Where("user_id = ? AND borrowed_id = ?", userID, recordID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) ListPaymentAmounts(ctx context.Context, userID, recordID string) ([]float64, error) {
	var amounts []float64
	if err := r.paymentsOf(ctx, userID, recordID).Pluck("amount", &amounts).Error; err != nil {
		return nil, err
	}
	return amounts, nil
}

func (r *PostgresRepository) paymentsOf(ctx context.Context, userID, recordID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("payments").
		Where("user_id = ? AND type = ? AND reference_id = ?", userID, "borrowed", recordID)
}
