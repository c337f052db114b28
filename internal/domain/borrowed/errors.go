package borrowed

import (
	"fmt"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
)

var (
	ErrRecordNotFound   = apperr.New(apperr.KindNotFound, "borrowed_not_found", "borrowed money record not found")
	ErrRecordHasPayment = apperr.New(apperr.KindConflict, "borrowed_has_payments", "cannot delete record with associated payments")
	ErrRecordHasExpense = apperr.New(apperr.KindConflict, "borrowed_has_expenses", "cannot delete record referenced by expenses")
	ErrExceedsRemaining = apperr.New(apperr.KindConflict, "exceeds_remaining", "payment amount exceeds remaining amount")
)

// ExceedsRemainingError rejects a repayment larger than what is still owed.
type ExceedsRemainingError struct {
	Remaining float64
	Requested float64
}

func (e *ExceedsRemainingError) Error() string {
	return fmt.Sprintf("payment amount %.2f exceeds remaining amount %.2f", e.Requested, e.Remaining)
}

func (e *ExceedsRemainingError) Unwrap() error {
	return ErrExceedsRemaining
}
