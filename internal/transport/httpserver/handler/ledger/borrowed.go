package ledger

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	analyticsdomain "github.com/saurabhsolanke/expensify-be/internal/domain/analytics"
	borroweddomain "github.com/saurabhsolanke/expensify-be/internal/domain/borrowed"
	paymentdomain "github.com/saurabhsolanke/expensify-be/internal/domain/payment"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/common"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/middleware"
)

type borrowedRequest struct {
	Name    *string  `json:"name"`
	Phone   *string  `json:"phone"`
	Amount  *float64 `json:"amount"`
	Type    *string  `json:"type"`
	DueDate *string  `json:"due_date"`
	Note    *string  `json:"note"`
}

type repayRequest struct {
	Amount        float64 `json:"amount"`
	PaymentDate   *string `json:"payment_date"`
	PaymentMethod *string `json:"payment_method"`
	Note          *string `json:"note"`
}

type borrowedResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           *string   `json:"phone"`
	Amount          float64   `json:"amount"`
	Type            string    `json:"type"`
	RepaidAmount    float64   `json:"repaid_amount"`
	RemainingAmount float64   `json:"remaining_amount"`
	Status          string    `json:"status"`
	DueDate         *string   `json:"due_date"`
	Note            *string   `json:"note"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type overdueResponse struct {
	borrowedResponse
	DaysSinceCreated int `json:"days_since_created"`
}

type directionTotalsResponse struct {
	Amount    float64 `json:"amount"`
	Repaid    float64 `json:"repaid"`
	Remaining float64 `json:"remaining"`
	Count     int64   `json:"count"`
}

func toBorrowedResponse(record borroweddomain.Record) borrowedResponse {
	return borrowedResponse{
		ID:              record.ID,
		Name:            record.Name,
		Phone:           record.Phone,
		Amount:          record.Amount,
		Type:            string(record.Type),
		RepaidAmount:    record.RepaidAmount,
		RemainingAmount: record.RemainingAmount(),
		Status:          string(record.Status),
		DueDate:         common.FormatOptionalDate(record.DueDate),
		Note:            record.Note,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func (h *Handlers) ListBorrowed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	query := r.URL.Query()
	params, err := common.ParsePaging(query, h.pagination)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.list: invalid query", err, "user_id", userID)
		return
	}

	filter := borroweddomain.ListFilter{
		Type:   borroweddomain.Type(strings.TrimSpace(query.Get("type"))),
		Status: borroweddomain.Status(strings.TrimSpace(query.Get("status"))),
		Params: params,
	}
	records, total, err := h.Borrowed.ListRecords(r.Context(), userID, filter)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.list: list records failed", err, "user_id", userID)
		return
	}

	response := make([]borrowedResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toBorrowedResponse(record))
	}

	common.WriteJSON(w, http.StatusOK, common.ListResponse("borrowed_money", response, total, params))
}

func (h *Handlers) GetBorrowed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	recordID := chi.URLParam(r, "id")
	record, err := h.Borrowed.GetRecord(r.Context(), userID, recordID)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.get: get record failed", err, "user_id", userID, "borrowed_id", recordID)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"borrowed_money": toBorrowedResponse(*record)})
}

func (h *Handlers) CreateBorrowed(w http.ResponseWriter, r *http.Request) {
	var req borrowedRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	dueDate, err := common.ParseOptionalDate("due_date", req.DueDate)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.create: invalid due date", err, "user_id", userID)
		return
	}

	input := borroweddomain.CreateInput{
		UserID:  userID,
		Name:    stringValue(req.Name),
		Phone:   req.Phone,
		Type:    borroweddomain.Type(strings.TrimSpace(stringValue(req.Type))),
		DueDate: dueDate,
		Note:    req.Note,
	}
	if req.Amount != nil {
		input.Amount = *req.Amount
	}

	created, err := h.Borrowed.CreateRecord(r.Context(), input)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.create: create record failed", err, "user_id", userID)
		return
	}

	common.WriteJSON(w, http.StatusCreated, common.MutationResponse("Borrowed money record created successfully", "borrowed_money", toBorrowedResponse(*created)))
}

func (h *Handlers) UpdateBorrowed(w http.ResponseWriter, r *http.Request) {
	var req borrowedRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	recordID := chi.URLParam(r, "id")
	dueDate, err := common.ParseOptionalDate("due_date", req.DueDate)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.update: invalid due date", err, "user_id", userID, "borrowed_id", recordID)
		return
	}

	input := borroweddomain.UpdateInput{
		UserID:   userID,
		RecordID: recordID,
		Name:     req.Name,
		Phone:    req.Phone,
		Amount:   req.Amount,
		DueDate:  dueDate,
		Note:     req.Note,
	}
	if req.Type != nil {
		recordType := borroweddomain.Type(strings.TrimSpace(*req.Type))
		input.Type = &recordType
	}

	updated, err := h.Borrowed.UpdateRecord(r.Context(), input)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.update: update record failed", err, "user_id", userID, "borrowed_id", recordID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.MutationResponse("Borrowed money record updated successfully", "borrowed_money", toBorrowedResponse(*updated)))
}

func (h *Handlers) DeleteBorrowed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	recordID := chi.URLParam(r, "id")
	if err := h.Borrowed.DeleteRecord(r.Context(), userID, recordID); err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.delete: delete record failed", err, "user_id", userID, "borrowed_id", recordID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.MessageResponse("Borrowed money record deleted successfully"))
}

// Repay records a repayment and returns the reconciled record. Amounts above
// the remaining balance are rejected with the remaining amount.
func (h *Handlers) Repay(w http.ResponseWriter, r *http.Request) {
	var req repayRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	recordID := chi.URLParam(r, "id")
	paymentDate, err := common.ParseOptionalDate("payment_date", req.PaymentDate)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.repay: invalid payment date", err, "user_id", userID, "borrowed_id", recordID)
		return
	}

	payment, record, err := h.Payments.Repay(r.Context(), paymentdomain.RepayInput{
		UserID:      userID,
		BorrowedID:  recordID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Method:      req.PaymentMethod,
		Note:        req.Note,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.repay: repay failed", err, "user_id", userID, "borrowed_id", recordID)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Payment recorded successfully",
		"payment":        toPaymentResponse(*payment),
		"borrowed_money": toBorrowedResponse(*record),
	})
}

func (h *Handlers) ListBorrowedPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	recordID := chi.URLParam(r, "id")
	params, err := common.ParsePaging(r.URL.Query(), h.pagination)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.payments: invalid query", err, "user_id", userID, "borrowed_id", recordID)
		return
	}

	payments, total, err := h.Payments.ListForRecord(r.Context(), userID, recordID, paymentdomain.ListFilter{Params: params})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.payments: list payments failed", err, "user_id", userID, "borrowed_id", recordID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.ListResponse("payments", toPaymentResponses(payments), total, params))
}

func (h *Handlers) ListOverdue(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	items, err := h.Borrowed.Overdue(r.Context(), userID)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.overdue: list overdue failed", err, "user_id", userID)
		return
	}

	response := make([]overdueResponse, 0, len(items))
	for _, item := range items {
		entry := overdueResponse{
			borrowedResponse: toBorrowedResponse(item.Record),
			DaysSinceCreated: item.DaysSinceCreated,
		}
		entry.RemainingAmount = item.RemainingAmount
		response = append(response, entry)
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"overdue": response,
		"total":   len(response),
	})
}

func (h *Handlers) BorrowedSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	from, to, err := common.ParseDateRange(r.URL.Query())
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.summary: invalid range", err, "user_id", userID)
		return
	}

	totals, err := h.Summaries.BorrowedTotals(r.Context(), userID, analyticsdomain.DateRange{From: from, To: to})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "borrowed.summary: totals failed", err, "user_id", userID)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summary": map[string]directionTotalsResponse{
			string(borroweddomain.TypeBorrowed): directionTotalsResponse(totals.Borrowed),
			string(borroweddomain.TypeLent):     directionTotalsResponse(totals.Lent),
		},
	})
}
