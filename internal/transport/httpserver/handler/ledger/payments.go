package ledger

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	analyticsdomain "github.com/saurabhsolanke/expensify-be/internal/domain/analytics"
	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	paymentdomain "github.com/saurabhsolanke/expensify-be/internal/domain/payment"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/common"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/middleware"
)

type paymentRequest struct {
	Type          *string  `json:"type"`
	ReferenceID   *string  `json:"reference_id"`
	Amount        *float64 `json:"amount"`
	PaymentDate   *string  `json:"payment_date"`
	PaymentMethod *string  `json:"payment_method"`
	Note          *string  `json:"note"`
}

type paymentResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ReferenceID   string    `json:"reference_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   string    `json:"payment_date"`
	PaymentMethod *string   `json:"payment_method"`
	Note          *string   `json:"note"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type totalsResponse struct {
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

func toPaymentResponse(payment paymentdomain.Payment) paymentResponse {
	return paymentResponse{
		ID:            payment.ID,
		Type:          string(payment.Type),
		ReferenceID:   payment.ReferenceID,
		Amount:        payment.Amount,
		PaymentDate:   common.FormatDate(payment.PaymentDate),
		PaymentMethod: payment.PaymentMethod,
		Note:          payment.Note,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}

func toPaymentResponses(payments []paymentdomain.Payment) []paymentResponse {
	response := make([]paymentResponse, 0, len(payments))
	for _, payment := range payments {
		response = append(response, toPaymentResponse(payment))
	}
	return response
}

// reference builds the payment reference from the request. Type and
// reference_id travel together; an update may omit both.
func (req paymentRequest) reference() (*paymentdomain.Reference, error) {
	if req.Type == nil && req.ReferenceID == nil {
		return nil, nil
	}
	if req.Type == nil {
		return nil, apperr.Validation("type", nil, "type is required with reference_id")
	}
	if req.ReferenceID == nil {
		return nil, apperr.Validation("reference_id", nil, "reference_id is required with type")
	}
	return &paymentdomain.Reference{
		Type: paymentdomain.Type(strings.TrimSpace(*req.Type)),
		ID:   *req.ReferenceID,
	}, nil
}

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	query := r.URL.Query()
	params, err := common.ParsePaging(query, h.pagination)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.list: invalid query", err, "user_id", userID)
		return
	}
	from, to, err := common.ParseDateRange(query)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.list: invalid query", err, "user_id", userID)
		return
	}

	payments, total, err := h.Payments.ListPayments(r.Context(), userID, paymentdomain.ListFilter{
		Type:        paymentdomain.Type(strings.TrimSpace(query.Get("type"))),
		ReferenceID: strings.TrimSpace(query.Get("reference_id")),
		From:        from,
		To:          to,
		Params:      params,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.list: list payments failed", err, "user_id", userID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.ListResponse("payments", toPaymentResponses(payments), total, params))
}

func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	paymentID := chi.URLParam(r, "id")
	payment, err := h.Payments.GetPayment(r.Context(), userID, paymentID)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.get: get payment failed", err, "user_id", userID, "payment_id", paymentID)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"payment": toPaymentResponse(*payment)})
}

func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	if req.Type == nil {
		empty := ""
		req.Type = &empty
	}
	if req.ReferenceID == nil {
		empty := ""
		req.ReferenceID = &empty
	}
	ref, err := req.reference()
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.create: invalid reference", err, "user_id", userID)
		return
	}
	paymentDate, err := common.ParseOptionalDate("payment_date", req.PaymentDate)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.create: invalid payment date", err, "user_id", userID)
		return
	}

	input := paymentdomain.CreateInput{
		UserID:      userID,
		Reference:   *ref,
		PaymentDate: paymentDate,
		Method:      req.PaymentMethod,
		Note:        req.Note,
	}
	if req.Amount != nil {
		input.Amount = *req.Amount
	}

	created, err := h.Payments.CreatePayment(r.Context(), input)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.create: create payment failed", err, "user_id", userID)
		return
	}

	common.WriteJSON(w, http.StatusCreated, common.MutationResponse("Payment created successfully", "payment", toPaymentResponse(*created)))
}

func (h *Handlers) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	paymentID := chi.URLParam(r, "id")
	ref, err := req.reference()
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.update: invalid reference", err, "user_id", userID, "payment_id", paymentID)
		return
	}
	paymentDate, err := common.ParseOptionalDate("payment_date", req.PaymentDate)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.update: invalid payment date", err, "user_id", userID, "payment_id", paymentID)
		return
	}

	updated, err := h.Payments.UpdatePayment(r.Context(), paymentdomain.UpdateInput{
		UserID:      userID,
		PaymentID:   paymentID,
		Reference:   ref,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Method:      req.PaymentMethod,
		Note:        req.Note,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.update: update payment failed", err, "user_id", userID, "payment_id", paymentID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.MutationResponse("Payment updated successfully", "payment", toPaymentResponse(*updated)))
}

func (h *Handlers) DeletePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	paymentID := chi.URLParam(r, "id")
	if err := h.Payments.DeletePayment(r.Context(), userID, paymentID); err != nil {
		common.WriteDomainError(w, r, h.log, "payments.delete: delete payment failed", err, "user_id", userID, "payment_id", paymentID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.MessageResponse("Payment deleted successfully"))
}

func (h *Handlers) PaymentSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	from, to, err := common.ParseDateRange(r.URL.Query())
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.summary: invalid range", err, "user_id", userID)
		return
	}

	totals, err := h.Summaries.PaymentTotals(r.Context(), userID, analyticsdomain.DateRange{From: from, To: to})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "payments.summary: totals failed", err, "user_id", userID)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summary": map[string]totalsResponse{
			string(paymentdomain.TypeCreditCard): totalsResponse(totals.CreditCard),
			string(paymentdomain.TypeBorrowed):   totalsResponse(totals.Borrowed),
		},
	})
}
