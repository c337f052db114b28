package creditcard

import "github.com/saurabhsolanke/expensify-be/internal/domain/apperr"

var (
	ErrCardNotFound = apperr.New(apperr.KindNotFound, "credit_card_not_found", "credit card not found")
	ErrCardInUse    = apperr.New(apperr.KindConflict, "credit_card_in_use", "cannot delete credit card with associated expenses")
)
