package borrowed

import "github.com/shopspring/decimal"

const centPlaces = 2

// DeriveStatus is the only place a status is computed from amounts.
func DeriveStatus(repaid, amount float64) Status {
	r := decimal.NewFromFloat(repaid).Round(centPlaces)
	a := decimal.NewFromFloat(amount).Round(centPlaces)
	switch {
	case r.LessThanOrEqual(decimal.Zero):
		return StatusPending
	case r.GreaterThanOrEqual(a):
		return StatusRepaid
	default:
		return StatusPartial
	}
}

// Reconcile clamps repaid into [0, amount] and derives the matching status.
func Reconcile(amount, repaid float64) (float64, Status) {
	a := decimal.NewFromFloat(amount).Round(centPlaces)
	r := decimal.NewFromFloat(repaid).Round(centPlaces)
	if r.LessThan(decimal.Zero) {
		r = decimal.Zero
	}
	if r.GreaterThan(a) {
		r = a
	}
	clamped := r.InexactFloat64()
	return clamped, DeriveStatus(clamped, amount)
}

// ApplyIncrement adds one payment to the running total.
func ApplyIncrement(amount, repaid, payment float64) (float64, Status) {
	total := decimal.NewFromFloat(repaid).Add(decimal.NewFromFloat(payment))
	return Reconcile(amount, total.InexactFloat64())
}

// RecomputeFromPayments rebuilds the running total from the full payment
// history of a record.
func RecomputeFromPayments(amount float64, payments []float64) (float64, Status) {
	total := decimal.Zero
	for _, payment := range payments {
		total = total.Add(decimal.NewFromFloat(payment))
	}
	return Reconcile(amount, total.InexactFloat64())
}

func Remaining(amount, repaid float64) float64 {
	remaining := decimal.NewFromFloat(amount).Sub(decimal.NewFromFloat(repaid)).Round(centPlaces)
	if remaining.LessThan(decimal.Zero) {
		return 0
	}
	return remaining.InexactFloat64()
}

// CheckRepayment rejects payments larger than the remaining balance.
func CheckRepayment(amount, repaid, payment float64) error {
	remaining := Remaining(amount, repaid)
	if decimal.NewFromFloat(payment).Round(centPlaces).GreaterThan(decimal.NewFromFloat(remaining)) {
		return &ExceedsRemainingError{Remaining: remaining, Requested: payment}
	}
	return nil
}

// positiveCents reports whether value is still above zero once rounded to
// cents, the precision amounts are stored with.
func positiveCents(value float64) bool {
	return decimal.NewFromFloat(value).Round(centPlaces).GreaterThan(decimal.Zero)
}
