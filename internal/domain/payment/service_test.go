package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	"github.com/saurabhsolanke/expensify-be/internal/domain/borrowed"
	"github.com/saurabhsolanke/expensify-be/internal/domain/creditcard"
)

const (
	userA   = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	userB   = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
	cardID  = "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
	loanID  = "dddddddd-dddd-4ddd-8ddd-dddddddddddd"
	loan2ID = "eeeeeeee-eeee-4eee-8eee-eeeeeeeeeeee"
	missing = "ffffffff-ffff-4fff-8fff-ffffffffffff"
)

type fakePaymentsRepo struct {
	payments map[string]*Payment
}

func (r *fakePaymentsRepo) List(ctx context.Context, userID string, filter ListFilter) ([]Payment, int64, error) {
	var items []Payment
	for _, payment := range r.payments {
		if payment.UserID != userID {
			continue
		}
		if filter.Type != "" && payment.Type != filter.Type {
			continue
		}
		if filter.ReferenceID != "" && payment.ReferenceID != filter.ReferenceID {
			continue
		}
		items = append(items, *payment)
	}
	return items, int64(len(items)), nil
}

func (r *fakePaymentsRepo) GetByID(ctx context.Context, userID, paymentID string) (*Payment, error) {
	payment, ok := r.payments[paymentID]
	if !ok || payment.UserID != userID {
		return nil, ErrPaymentNotFound
	}
	copied := *payment
	return &copied, nil
}

func (r *fakePaymentsRepo) Create(ctx context.Context, payment *Payment) error {
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentsRepo) Update(ctx context.Context, payment *Payment) error {
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentsRepo) Delete(ctx context.Context, userID, paymentID string) (bool, error) {
	payment, ok := r.payments[paymentID]
	if !ok || payment.UserID != userID {
		return false, nil
	}
	delete(r.payments, paymentID)
	return true, nil
}

// fakeLedgerRepo backs a real borrowed.Service and reads repayments from the
// payments fake, the same way the postgres repository reads the payments table.
type fakeLedgerRepo struct {
	records  map[string]*borrowed.Record
	payments *fakePaymentsRepo
}

func (r *fakeLedgerRepo) Transaction(ctx context.Context, fn func(borrowed.Repository) error) error {
	return fn(r)
}

func (r *fakeLedgerRepo) List(ctx context.Context, userID string, filter borrowed.ListFilter) ([]borrowed.Record, int64, error) {
	return nil, 0, nil
}

func (r *fakeLedgerRepo) ListByStatus(ctx context.Context, userID string, statuses []borrowed.Status) ([]borrowed.Record, error) {
	return nil, nil
}

func (r *fakeLedgerRepo) GetByID(ctx context.Context, userID, recordID string) (*borrowed.Record, error) {
	record, ok := r.records[recordID]
	if !ok || record.UserID != userID {
		return nil, borrowed.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeLedgerRepo) GetByIDForUpdate(ctx context.Context, userID, recordID string) (*borrowed.Record, error) {
	return r.GetByID(ctx, userID, recordID)
}

func (r *fakeLedgerRepo) Create(ctx context.Context, record *borrowed.Record) error {
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *fakeLedgerRepo) Update(ctx context.Context, record *borrowed.Record) error {
	return r.Create(ctx, record)
}

func (r *fakeLedgerRepo) UpdateLedger(ctx context.Context, record *borrowed.Record) error {
	stored := r.records[record.ID]
	stored.RepaidAmount = record.RepaidAmount
	stored.Status = record.Status
	return nil
}

func (r *fakeLedgerRepo) Delete(ctx context.Context, userID, recordID string) (bool, error) {
	return false, nil
}

func (r *fakeLedgerRepo) CountPayments(ctx context.Context, userID, recordID string) (int64, error) {
	amounts, err := r.ListPaymentAmounts(ctx, userID, recordID)
	return int64(len(amounts)), err
}

func (r *fakeLedgerRepo) CountExpenses(ctx context.Context, userID, recordID string) (int64, error) {
	return 0, nil
}

func (r *fakeLedgerRepo) ListPaymentAmounts(ctx context.Context, userID, recordID string) ([]float64, error) {
	var amounts []float64
	for _, payment := range r.payments.payments {
		if payment.UserID == userID && payment.Type == TypeBorrowed && payment.ReferenceID == recordID {
			amounts = append(amounts, payment.Amount)
		}
	}
	return amounts, nil
}

type fakeCards struct {
	cards map[string]string
}

func (c fakeCards) GetCard(ctx context.Context, userID, id string) (*creditcard.CreditCard, error) {
	owner, ok := c.cards[id]
	if !ok || owner != userID {
		return nil, creditcard.ErrCardNotFound
	}
	return &creditcard.CreditCard{ID: id, UserID: owner}, nil
}

type fixture struct {
	svc      *Service
	payments *fakePaymentsRepo
	ledger   *fakeLedgerRepo
}

func newFixture() fixture {
	payments := &fakePaymentsRepo{payments: make(map[string]*Payment)}
	ledger := &fakeLedgerRepo{
		records: map[string]*borrowed.Record{
			loanID:  {ID: loanID, UserID: userA, Name: "Ravi", Amount: 1000, Type: borrowed.TypeLent, Status: borrowed.StatusPending},
			loan2ID: {ID: loan2ID, UserID: userA, Name: "Asha", Amount: 300, Type: borrowed.TypeBorrowed, Status: borrowed.StatusPending},
		},
		payments: payments,
	}
	svc := NewService(payments, fakeCards{cards: map[string]string{cardID: userA}}, borrowed.NewService(ledger))
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC) }
	return fixture{svc: svc, payments: payments, ledger: ledger}
}

func (f fixture) record(id string) *borrowed.Record {
	return f.ledger.records[id]
}

func TestRepaymentScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, record, err := f.svc.Repay(ctx, RepayInput{UserID: userA, BorrowedID: loanID, Amount: 400})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if record.RepaidAmount != 400 || record.Status != borrowed.StatusPartial {
		t.Fatalf("unexpected record after first repayment %+v", record)
	}

	_, _, err = f.svc.Repay(ctx, RepayInput{UserID: userA, BorrowedID: loanID, Amount: 700})
	if !errors.Is(err, borrowed.ErrExceedsRemaining) {
		t.Fatalf("expected ErrExceedsRemaining, got %v", err)
	}
	var exceeds *borrowed.ExceedsRemainingError
	if !errors.As(err, &exceeds) || exceeds.Remaining != 600 {
		t.Fatalf("expected remaining 600, got %v", err)
	}
	if len(f.payments.payments) != 1 {
		t.Fatalf("rejected repayment must not be stored, got %d payments", len(f.payments.payments))
	}

	payment, record, err := f.svc.Repay(ctx, RepayInput{UserID: userA, BorrowedID: loanID, Amount: 600})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if record.RepaidAmount != 1000 || record.Status != borrowed.StatusRepaid {
		t.Fatalf("unexpected record after settling %+v", record)
	}
	if payment.Type != TypeBorrowed || payment.ReferenceID != loanID {
		t.Fatalf("unexpected payment %+v", payment)
	}
	if !payment.PaymentDate.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected payment date to default to today, got %v", payment.PaymentDate)
	}
}

func TestCreatePaymentClampsBorrowedLedger(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.CreatePayment(ctx, CreateInput{UserID: userA, Reference: Reference{Type: TypeBorrowed, ID: loan2ID}, Amount: 500}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	record := f.record(loan2ID)
	if record.RepaidAmount != 300 || record.Status != borrowed.StatusRepaid {
		t.Fatalf("expected clamped repaid record, got %+v", record)
	}
}

func TestCreatePaymentForCardLeavesLedgerAlone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	payment, err := f.svc.CreatePayment(ctx, CreateInput{UserID: userA, Reference: Reference{Type: TypeCreditCard, ID: cardID}, Amount: 250.5})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if payment.Type != TypeCreditCard {
		t.Fatalf("unexpected payment %+v", payment)
	}
	if f.record(loanID).RepaidAmount != 0 {
		t.Fatalf("card payment must not touch borrowed records")
	}
}

func TestCreatePaymentRejectsBadReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		ref  Reference
		kind apperr.Kind
	}{
		{"unknown card", Reference{Type: TypeCreditCard, ID: missing}, apperr.KindReference},
		{"card id used as loan", Reference{Type: TypeBorrowed, ID: cardID}, apperr.KindReference},
		{"malformed id", Reference{Type: TypeBorrowed, ID: "42"}, apperr.KindInvalidFormat},
		{"unknown type", Reference{Type: "wallet", ID: cardID}, apperr.KindValidation},
	}
	for _, tc := range cases {
		_, err := f.svc.CreatePayment(ctx, CreateInput{UserID: userA, Reference: tc.ref, Amount: 10})
		if apperr.KindOf(err) != tc.kind {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.kind, err)
		}
	}

	_, err := f.svc.CreatePayment(ctx, CreateInput{UserID: userB, Reference: Reference{Type: TypeCreditCard, ID: cardID}, Amount: 10})
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected foreign card to be rejected, got %v", err)
	}

	_, err = f.svc.CreatePayment(ctx, CreateInput{UserID: userA, Reference: Reference{Type: TypeCreditCard, ID: cardID}, Amount: 0})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
	_, err = f.svc.CreatePayment(ctx, CreateInput{UserID: userA, Reference: Reference{Type: TypeCreditCard, ID: cardID}, Amount: 0.004})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for an amount that rounds to zero, got %v", err)
	}
	if len(f.payments.payments) != 0 {
		t.Fatalf("expected no payments stored, got %d", len(f.payments.payments))
	}
}

func TestDeleteLastPaymentReturnsRecordToPending(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	payment, _, err := f.svc.Repay(ctx, RepayInput{UserID: userA, BorrowedID: loanID, Amount: 400})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := f.svc.DeletePayment(ctx, userA, payment.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	record := f.record(loanID)
	if record.RepaidAmount != 0 || record.Status != borrowed.StatusPending {
		t.Fatalf("expected pending record, got %+v", record)
	}

	if err := f.svc.DeletePayment(ctx, userA, payment.ID); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestUpdatePaymentRecomputesOldAndNewRecords(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	payment, _, err := f.svc.Repay(ctx, RepayInput{UserID: userA, BorrowedID: loanID, Amount: 400})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	amount := 100.0
	updated, err := f.svc.UpdatePayment(ctx, UpdateInput{
		UserID:    userA,
		PaymentID: payment.ID,
		Reference: &Reference{Type: TypeBorrowed, ID: loan2ID},
		Amount:    &amount,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.ReferenceID != loan2ID || updated.Amount != 100 {
		t.Fatalf("unexpected payment %+v", updated)
	}

	if old := f.record(loanID); old.RepaidAmount != 0 || old.Status != borrowed.StatusPending {
		t.Fatalf("expected old record back to pending, got %+v", old)
	}
	if moved := f.record(loan2ID); moved.RepaidAmount != 100 || moved.Status != borrowed.StatusPartial {
		t.Fatalf("expected new record partial, got %+v", moved)
	}
}

func TestListForRecordScopesToRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, _, err := f.svc.Repay(ctx, RepayInput{UserID: userA, BorrowedID: loanID, Amount: 100}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, _, err := f.svc.Repay(ctx, RepayInput{UserID: userA, BorrowedID: loan2ID, Amount: 50}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	items, total, err := f.svc.ListForRecord(ctx, userA, loanID, ListFilter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ReferenceID != loanID {
		t.Fatalf("unexpected history %+v", items)
	}

	if _, _, err := f.svc.ListForRecord(ctx, userB, loanID, ListFilter{}); !errors.Is(err, borrowed.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
