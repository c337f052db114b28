package borrowed

import (
	"context"
	"strings"
	"time"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	"github.com/saurabhsolanke/expensify-be/internal/domain/ids"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListRecords(ctx context.Context, userID string, filter ListFilter) ([]Record, int64, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, apperr.Validation("type", filter.Type, "type must be borrowed or lent")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperr.Validation("status", filter.Status, "status must be pending, partial or repaid")
	}

	records, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, total, nil
}

// GetRecord returns the record only when userID owns it.
func (s *Service) GetRecord(ctx context.Context, userID, recordID string) (*Record, error) {
	id, err := ids.Parse("borrowed_id", recordID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) CreateRecord(ctx context.Context, input CreateInput) (*Record, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, apperr.Validation("type", input.Type, "type must be borrowed or lent")
	}

	record := Record{
		ID:      ids.New(),
		UserID:  input.UserID,
		Name:    name,
		Phone:   trimOptional(input.Phone),
		Amount:  input.Amount,
		Type:    input.Type,
		DueDate: input.DueDate,
		Note:    trimOptional(input.Note),
	}
	record.RepaidAmount, record.Status = Reconcile(record.Amount, 0)

	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateRecord edits the descriptive fields. A principal change re-runs the
// ledger from the payment history so repaid/status stay consistent.
func (s *Service) UpdateRecord(ctx context.Context, input UpdateInput) (*Record, error) {
	id, err := ids.Parse("borrowed_id", input.RecordID)
	if err != nil {
		return nil, err
	}

	var updated Record
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		record, err := tx.GetByIDForUpdate(ctx, input.UserID, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name, err := validateName(*input.Name)
			if err != nil {
				return err
			}
			record.Name = name
		}
		if input.Phone != nil {
			record.Phone = trimOptional(input.Phone)
		}
		if input.Type != nil {
			if !input.Type.Valid() {
				return apperr.Validation("type", *input.Type, "type must be borrowed or lent")
			}
			record.Type = *input.Type
		}
		if input.DueDate != nil {
			record.DueDate = input.DueDate
		}
		if input.Note != nil {
			record.Note = trimOptional(input.Note)
		}
		if input.Amount != nil {
			if err := validateAmount(*input.Amount); err != nil {
				return err
			}
			record.Amount = *input.Amount
			payments, err := tx.ListPaymentAmounts(ctx, input.UserID, record.ID)
			if err != nil {
				return err
			}
			record.RepaidAmount, record.Status = RecomputeFromPayments(record.Amount, payments)
		}

		if err := tx.Update(ctx, record); err != nil {
			return err
		}
		updated = *record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteRecord(ctx context.Context, userID, recordID string) error {
	record, err := s.GetRecord(ctx, userID, recordID)
	if err != nil {
		return err
	}

	payments, err := s.repo.CountPayments(ctx, userID, record.ID)
	if err != nil {
		return err
	}
	if payments > 0 {
		return ErrRecordHasPayment
	}

	expenses, err := s.repo.CountExpenses(ctx, userID, record.ID)
	if err != nil {
		return err
	}
	if expenses > 0 {
		return ErrRecordHasExpense
	}

	deleted, err := s.repo.Delete(ctx, userID, record.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecordNotFound
	}
	return nil
}

// Repay checks amount against the remaining balance while holding the row
// lock, lets persist store the payment, then applies the increment. A second
// repayment racing this one waits for the lock and sees the new balance.
func (s *Service) Repay(ctx context.Context, userID, recordID string, amount float64, persist func(*Record) error) (*Record, error) {
	if err := validatePaymentAmount(amount); err != nil {
		return nil, err
	}
	id, err := ids.Parse("borrowed_id", recordID)
	if err != nil {
		return nil, err
	}

	var updated Record
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		record, err := tx.GetByIDForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := CheckRepayment(record.Amount, record.RepaidAmount, amount); err != nil {
			return err
		}
		if err := persist(record); err != nil {
			return err
		}
		record.RepaidAmount, record.Status = ApplyIncrement(record.Amount, record.RepaidAmount, amount)
		if err := tx.UpdateLedger(ctx, record); err != nil {
			return err
		}
		updated = *record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ApplyRepayment adds amount to the running repaid total under a row lock.
func (s *Service) ApplyRepayment(ctx context.Context, userID, recordID string, amount float64) (*Record, error) {
	id, err := ids.Parse("borrowed_id", recordID)
	if err != nil {
		return nil, err
	}

	var updated Record
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		record, err := tx.GetByIDForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		record.RepaidAmount, record.Status = ApplyIncrement(record.Amount, record.RepaidAmount, amount)
		if err := tx.UpdateLedger(ctx, record); err != nil {
			return err
		}
		updated = *record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RecomputeRepaid rebuilds repaid/status from every remaining payment of the
// record. Used after a payment is edited or removed.
func (s *Service) RecomputeRepaid(ctx context.Context, userID, recordID string) (*Record, error) {
	id, err := ids.Parse("borrowed_id", recordID)
	if err != nil {
		return nil, err
	}

	var updated Record
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		record, err := tx.GetByIDForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		payments, err := tx.ListPaymentAmounts(ctx, userID, record.ID)
		if err != nil {
			return err
		}
		record.RepaidAmount, record.Status = RecomputeFromPayments(record.Amount, payments)
		if err := tx.UpdateLedger(ctx, record); err != nil {
			return err
		}
		updated = *record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Overdue lists every unsettled record with its remaining amount and age.
func (s *Service) Overdue(ctx context.Context, userID string) ([]OverdueItem, error) {
	records, err := s.repo.ListByStatus(ctx, userID, []Status{StatusPending, StatusPartial})
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]OverdueItem, 0, len(records))
	for _, record := range records {
		items = append(items, OverdueItem{
			Record:           record,
			RemainingAmount:  record.RemainingAmount(),
			DaysSinceCreated: wholeDaysBetween(record.CreatedAt, now),
		})
	}
	return items, nil
}

func wholeDaysBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}

func validateName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return "", apperr.Validation("name", value, "name is required")
	}
	return name, nil
}

func validateAmount(value float64) error {
	if !positiveCents(value) {
		return apperr.Validation("amount", value, "amount must be greater than 0")
	}
	return nil
}

func validatePaymentAmount(value float64) error {
	if !positiveCents(value) {
		return apperr.Validation("amount", value, "payment amount must be greater than 0")
	}
	return nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
