package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfWrapped(t *testing.T) {
	sentinel := New(KindNotFound, "thing_not_found", "thing not found")
	wrapped := fmt.Errorf("lookup: %w", sentinel)

	if KindOf(wrapped) != KindNotFound {
		t.Fatalf("expected not_found, got %s", KindOf(wrapped))
	}
	if !errors.Is(wrapped, sentinel) {
		t.Fatalf("expected errors.Is to match sentinel")
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatalf("expected plain errors to be internal")
	}
}

func TestValidationCarriesField(t *testing.T) {
	err := Validation("amount", -5.0, "amount must be positive")
	appErr, ok := As(err)
	if !ok {
		t.Fatalf("expected apperr")
	}
	if appErr.Field != "amount" || appErr.Value != -5.0 || appErr.Kind != KindValidation {
		t.Fatalf("unexpected error %+v", appErr)
	}
}
