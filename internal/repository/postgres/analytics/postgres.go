package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	analyticsdomain "github.com/saurabhsolanke/expensify-be/internal/domain/analytics"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ExpenseTotals(ctx context.Context, userID string, dates analyticsdomain.DateRange) (analyticsdomain.Totals, error) {
	where, args := buildRangeWhere("e.user_id", "e.date", userID, dates)
	query := "SELECT COALESCE(SUM(e.amount), 0) AS amount, COUNT(*) AS count FROM expenses e WHERE " + where

	var row analyticsdomain.Totals
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return analyticsdomain.Totals{}, err
	}
	return row, nil
}

func (r *PostgresRepository) ExpensesByCategory(ctx context.Context, userID string, dates analyticsdomain.DateRange) ([]analyticsdomain.CategoryTotal, error) {
	where, args := buildRangeWhere("e.user_id", "e.date", userID, dates)
	query := fmt.Sprintf("SELECT c.id AS category_id, c.name AS name, c.color AS color, c.icon AS icon, COALESCE(SUM(e.amount), 0) AS total, COUNT(e.id) AS count "+
		"FROM expenses e JOIN categories c ON c.id = e.category_id AND c.user_id = e.user_id "+
		"WHERE %s GROUP BY c.id, c.name, c.color, c.icon ORDER BY total DESC", where)

	var rows []analyticsdomain.CategoryTotal
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) ExpensesByPaymentMode(ctx context.Context, userID string, dates analyticsdomain.DateRange) ([]analyticsdomain.PaymentModeTotal, error) {
	where, args := buildRangeWhere("e.user_id", "e.date", userID, dates)
	query := fmt.Sprintf("SELECT e.payment_mode AS payment_mode, COALESCE(SUM(e.amount), 0) AS total, COUNT(*) AS count FROM expenses e WHERE %s GROUP BY e.payment_mode ORDER BY total DESC", where)

	var rows []analyticsdomain.PaymentModeTotal
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) MonthlyTrend(ctx context.Context, userID string, dates analyticsdomain.DateRange, limit int) ([]analyticsdomain.MonthTotal, error) {
	where, args := buildRangeWhere("e.user_id", "e.date", userID, dates)
	periodExpr := "date_trunc('month', e.date::timestamp)"
	query := fmt.Sprintf("SELECT to_char(%s, 'YYYY-MM') AS month, COALESCE(SUM(e.amount), 0) AS total, COUNT(*) AS count FROM expenses e WHERE %s GROUP BY %s ORDER BY %s DESC LIMIT ?", periodExpr, where, periodExpr, periodExpr)
	args = append(args, limit)

	var rows []analyticsdomain.MonthTotal
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) CardExpenseTotals(ctx context.Context, userID, cardID string, from, to time.Time) (analyticsdomain.Totals, error) {
	query := "SELECT COALESCE(SUM(e.amount), 0) AS amount, COUNT(*) AS count FROM expenses e " +
		"WHERE e.user_id = ? AND e.credit_card_id = ? AND e.payment_mode = 'credit_card' AND e.date >= ? AND e.date <= ?"

	var row analyticsdomain.Totals
	if err := r.db.WithContext(ctx).Raw(query, userID, cardID, from, to).Scan(&row).Error; err != nil {
		return analyticsdomain.Totals{}, err
	}
	return row, nil
}

func (r *PostgresRepository) LastCardPayment(ctx context.Context, userID, cardID string) (*analyticsdomain.LastPayment, error) {
	var row analyticsdomain.LastPayment
	err := r.db.WithContext(ctx).
		Table("payments").
		Select("id, amount, payment_date, payment_method").
		Where("user_id = ? AND type = ? AND reference_id = ?", userID, "credit_card", cardID).
		Order("payment_date desc, created_at desc").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *PostgresRepository) PaymentTotalsByType(ctx context.Context, userID string, dates analyticsdomain.DateRange) ([]analyticsdomain.TypeRow, error) {
	where, args := buildRangeWhere("p.user_id", "p.payment_date", userID, dates)
	query := fmt.Sprintf("SELECT p.type AS type, COALESCE(SUM(p.amount), 0) AS amount, COUNT(*) AS count FROM payments p WHERE %s GROUP BY p.type", where)

	var rows []analyticsdomain.TypeRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) BorrowedTotalsByType(ctx context.Context, userID string, dates analyticsdomain.DateRange) ([]analyticsdomain.DirectionRow, error) {
	where, args := buildRangeWhere("b.user_id", "b.created_at::date", userID, dates)
	query := fmt.Sprintf("SELECT b.type AS type, COALESCE(SUM(b.amount), 0) AS amount, COALESCE(SUM(b.repaid_amount), 0) AS repaid, COUNT(*) AS count FROM borrowed_money b WHERE %s GROUP BY b.type", where)

	var rows []analyticsdomain.DirectionRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func buildRangeWhere(userColumn, dateColumn, userID string, dates analyticsdomain.DateRange) (string, []interface{}) {
	conditions := []string{userColumn + " = ?"}
	args := []interface{}{userID}

	if dates.From != nil {
		conditions = append(conditions, dateColumn+" >= ?")
		args = append(args, *dates.From)
	}
	if dates.To != nil {
		conditions = append(conditions, dateColumn+" <= ?")
		args = append(args, *dates.To)
	}

	return strings.Join(conditions, " AND "), args
}
