package expenses

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	expensesdomain "github.com/saurabhsolanke/expensify-be/internal/domain/expenses"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/common"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/middleware"
)

type expenseRequest struct {
	Amount             *float64 `json:"amount"`
	CategoryID         *string  `json:"category_id"`
	PaymentMode        *string  `json:"payment_mode"`
	CreditCardID       *string  `json:"credit_card_id"`
	BorrowedID         *string  `json:"borrowed_id"`
	Date               *string  `json:"date"`
	Note               *string  `json:"note"`
	IsRecurring        *bool    `json:"is_recurring"`
	RecurringFrequency *string  `json:"recurring_frequency"`
}

type expenseResponse struct {
	ID                 string    `json:"id"`
	Amount             float64   `json:"amount"`
	CategoryID         string    `json:"category_id"`
	PaymentMode        string    `json:"payment_mode"`
	CreditCardID       *string   `json:"credit_card_id"`
	BorrowedID         *string   `json:"borrowed_id"`
	Date               string    `json:"date"`
	Note               *string   `json:"note"`
	IsRecurring        bool      `json:"is_recurring"`
	RecurringFrequency *string   `json:"recurring_frequency"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toExpenseResponse(expense expensesdomain.Expense) expenseResponse {
	response := expenseResponse{
		ID:           expense.ID,
		Amount:       expense.Amount,
		CategoryID:   expense.CategoryID,
		PaymentMode:  string(expense.PaymentMode),
		CreditCardID: expense.CreditCardID,
		BorrowedID:   expense.BorrowedID,
		Date:         common.FormatDate(expense.Date),
		Note:         expense.Note,
		IsRecurring:  expense.IsRecurring,
		CreatedAt:    expense.CreatedAt,
		UpdatedAt:    expense.UpdatedAt,
	}
	if expense.RecurringFrequency != nil {
		frequency := string(*expense.RecurringFrequency)
		response.RecurringFrequency = &frequency
	}
	return response
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	filter, err := h.parseExpenseFilter(r)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "expenses.list: invalid query", err, "user_id", userID)
		return
	}

	items, total, err := h.Expenses.ListExpenses(r.Context(), userID, filter)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "expenses.list: list expenses failed", err, "user_id", userID)
		return
	}

	response := make([]expenseResponse, 0, len(items))
	for _, expense := range items {
		response = append(response, toExpenseResponse(expense))
	}

	common.WriteJSON(w, http.StatusOK, common.ListResponse("expenses", response, total, filter.Params))
}

func (h *Handlers) parseExpenseFilter(r *http.Request) (expensesdomain.ListFilter, error) {
	query := r.URL.Query()

	params, err := common.ParsePaging(query, h.pagination)
	if err != nil {
		return expensesdomain.ListFilter{}, err
	}
	from, to, err := common.ParseDateRange(query)
	if err != nil {
		return expensesdomain.ListFilter{}, err
	}
	minAmount, err := common.ParseFloatParam(query, "min_amount")
	if err != nil {
		return expensesdomain.ListFilter{}, err
	}
	maxAmount, err := common.ParseFloatParam(query, "max_amount")
	if err != nil {
		return expensesdomain.ListFilter{}, err
	}

	return expensesdomain.ListFilter{
		From:         from,
		To:           to,
		CategoryID:   strings.TrimSpace(query.Get("category_id")),
		PaymentMode:  expensesdomain.PaymentMode(strings.TrimSpace(query.Get("payment_mode"))),
		CreditCardID: strings.TrimSpace(query.Get("credit_card_id")),
		BorrowedID:   strings.TrimSpace(query.Get("borrowed_id")),
		MinAmount:    minAmount,
		MaxAmount:    maxAmount,
		Params:       params,
	}, nil
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	expenseID := chi.URLParam(r, "id")
	expense, err := h.Expenses.GetExpense(r.Context(), userID, expenseID)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "expenses.get: get expense failed", err, "user_id", userID, "expense_id", expenseID)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"expense": toExpenseResponse(*expense)})
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	date, err := common.ParseOptionalDate("date", req.Date)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "expenses.create: invalid date", err, "user_id", userID)
		return
	}

	input := expensesdomain.CreateExpenseInput{
		UserID:       userID,
		CategoryID:   stringValue(req.CategoryID),
		PaymentMode:  expensesdomain.PaymentMode(strings.TrimSpace(stringValue(req.PaymentMode))),
		CreditCardID: req.CreditCardID,
		BorrowedID:   req.BorrowedID,
		Date:         date,
		Note:         req.Note,
	}
	if req.Amount != nil {
		input.Amount = *req.Amount
	}
	if req.IsRecurring != nil {
		input.IsRecurring = *req.IsRecurring
	}
	input.RecurringFrequency = frequencyPtr(req.RecurringFrequency)

	created, err := h.Expenses.CreateExpense(r.Context(), input)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "expenses.create: create expense failed", err, "user_id", userID)
		return
	}

	common.WriteJSON(w, http.StatusCreated, common.MutationResponse("Expense created successfully", "expense", toExpenseResponse(*created)))
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	expenseID := chi.URLParam(r, "id")
	date, err := common.ParseOptionalDate("date", req.Date)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "expenses.update: invalid date", err, "user_id", userID, "expense_id", expenseID)
		return
	}

	input := expensesdomain.UpdateExpenseInput{
		UserID:             userID,
		ExpenseID:          expenseID,
		Amount:             req.Amount,
		CategoryID:         req.CategoryID,
		CreditCardID:       req.CreditCardID,
		BorrowedID:         req.BorrowedID,
		Date:               date,
		Note:               req.Note,
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: frequencyPtr(req.RecurringFrequency),
	}
	if req.PaymentMode != nil {
		mode := expensesdomain.PaymentMode(strings.TrimSpace(*req.PaymentMode))
		input.PaymentMode = &mode
	}

	updated, err := h.Expenses.UpdateExpense(r.Context(), input)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "expenses.update: update expense failed", err, "user_id", userID, "expense_id", expenseID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.MutationResponse("Expense updated successfully", "expense", toExpenseResponse(*updated)))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	expenseID := chi.URLParam(r, "id")
	if err := h.Expenses.DeleteExpense(r.Context(), userID, expenseID); err != nil {
		common.WriteDomainError(w, r, h.log, "expenses.delete: delete expense failed", err, "user_id", userID, "expense_id", expenseID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.MessageResponse("Expense deleted successfully"))
}

func frequencyPtr(value *string) *expensesdomain.Frequency {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	frequency := expensesdomain.Frequency(trimmed)
	return &frequency
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
