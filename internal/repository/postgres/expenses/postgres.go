package expenses

import (
	"context"
	"errors"

	"gorm.io/gorm"

	expensesdomain "github.com/saurabhsolanke/expensify-be/internal/domain/expenses"
)

var expenseSortColumns = map[string]string{
	"date":       "date",
	"amount":     "amount",
	"created_at": "created_at",
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListExpenses(ctx context.Context, userID string, filter expensesdomain.ListFilter) ([]expensesdomain.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&expensesdomain.Expense{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.PaymentMode != "" {
		query = query.Where("payment_mode = ?", filter.PaymentMode)
	}
	if filter.CreditCardID != "" {
		query = query.Where("credit_card_id = ?", filter.CreditCardID)
	}
	if filter.BorrowedID != "" {
		query = query.Where("borrowed_id = ?", filter.BorrowedID)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(filter.OrderClause(expenseSortColumns, "date")).Order("created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if offset := filter.Offset(); offset > 0 {
		query = query.Offset(offset)
	}

	var items []expensesdomain.Expense
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, userID, expenseID string) (*expensesdomain.Expense, error) {
	var expense expensesdomain.Expense
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, expenseID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("id = ? AND user_id = ?", expense.ID, expense.UserID).
		Updates(map[string]interface{}{
			"amount":              expense.Amount,
			"category_id":         expense.CategoryID,
			"payment_mode":        expense.PaymentMode,
			"credit_card_id":      expense.CreditCardID,
			"borrowed_id":         expense.BorrowedID,
			"date":                expense.Date,
			"note":                expense.Note,
			"is_recurring":        expense.IsRecurring,
			"recurring_frequency": expense.RecurringFrequency,
		}).Error
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, userID, expenseID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&expensesdomain.Expense{}, "user_id = ? AND id = ?", userID, expenseID)
	return result.RowsAffected > 0, result.Error
}
