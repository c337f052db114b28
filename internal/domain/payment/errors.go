package payment

import "github.com/saurabhsolanke/expensify-be/internal/domain/apperr"

var (
	ErrPaymentNotFound  = apperr.New(apperr.KindNotFound, "payment_not_found", "payment not found")
	ErrInvalidReference = apperr.New(apperr.KindReference, "invalid_reference", "referenced record not found")
)
