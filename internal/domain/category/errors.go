package category

import "github.com/saurabhsolanke/expensify-be/internal/domain/apperr"

var (
	ErrCategoryNotFound     = apperr.New(apperr.KindNotFound, "category_not_found", "category not found")
	ErrCategoryNameTaken    = apperr.New(apperr.KindConflict, "category_name_taken", "category with this name already exists")
	ErrDefaultCategory      = apperr.New(apperr.KindConflict, "default_category", "default categories cannot be deleted")
	ErrCategoryInUse        = apperr.New(apperr.KindConflict, "category_in_use", "category is used by expenses")
	ErrDefaultsAlreadySetUp = apperr.New(apperr.KindConflict, "defaults_exist", "default categories already set up")
	ErrInvalidColor         = apperr.New(apperr.KindValidation, "invalid_request", "color must be #RRGGBB")
)
