package expenses

import "github.com/saurabhsolanke/expensify-be/internal/domain/apperr"

var (
	ErrExpenseNotFound   = apperr.New(apperr.KindNotFound, "expense_not_found", "expense not found")
	ErrInvalidCategory   = apperr.New(apperr.KindReference, "invalid_category", "category not found")
	ErrInvalidCreditCard = apperr.New(apperr.KindReference, "invalid_credit_card", "credit card not found")
	ErrInvalidBorrowed   = apperr.New(apperr.KindReference, "invalid_borrowed", "borrowed money record not found")
)
