package ledger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	creditcarddomain "github.com/saurabhsolanke/expensify-be/internal/domain/creditcard"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/common"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/middleware"
)

type createCardRequest struct {
	BankName    string   `json:"bank_name"`
	CardNumber  string   `json:"card_number"`
	CardType    *string  `json:"card_type"`
	LimitAmount *float64 `json:"limit_amount"`
	DueDate     int      `json:"due_date"`
	IsActive    *bool    `json:"is_active"`
}

type updateCardRequest struct {
	BankName    *string               `json:"bank_name"`
	CardNumber  *string               `json:"card_number"`
	CardType    *string               `json:"card_type"`
	LimitAmount optionalNullableFloat `json:"limit_amount"`
	DueDate     *int                  `json:"due_date"`
	IsActive    *bool                 `json:"is_active"`
}

type cardResponse struct {
	ID          string    `json:"id"`
	BankName    string    `json:"bank_name"`
	CardNumber  string    `json:"card_number"`
	CardType    *string   `json:"card_type"`
	LimitAmount *float64  `json:"limit_amount"`
	DueDate     int       `json:"due_date"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type cardSummaryResponse struct {
	MonthStart     string               `json:"month_start"`
	MonthEnd       string               `json:"month_end"`
	MonthTotal     float64              `json:"month_total"`
	MonthCount     int64                `json:"month_count"`
	AvailableLimit *float64             `json:"available_limit"`
	LastPayment    *lastPaymentResponse `json:"last_payment"`
}

type lastPaymentResponse struct {
	ID            string  `json:"id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"payment_date"`
	PaymentMethod *string `json:"payment_method"`
}

func toCardResponse(card creditcarddomain.CreditCard) cardResponse {
	return cardResponse{
		ID:          card.ID,
		BankName:    card.BankName,
		CardNumber:  card.CardNumber,
		CardType:    card.CardType,
		LimitAmount: card.LimitAmount,
		DueDate:     card.DueDate,
		IsActive:    card.IsActive,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}

func (h *Handlers) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	query := r.URL.Query()
	params, err := common.ParsePaging(query, h.pagination)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "credit_cards.list: invalid query", err, "user_id", userID)
		return
	}
	isActive, err := common.ParseBoolParam(query, "is_active")
	if err != nil {
		common.WriteDomainError(w, r, h.log, "credit_cards.list: invalid query", err, "user_id", userID)
		return
	}

	cards, total, err := h.Cards.ListCards(r.Context(), userID, creditcarddomain.ListFilter{IsActive: isActive, Params: params})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "credit_cards.list: list cards failed", err, "user_id", userID)
		return
	}

	response := make([]cardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, toCardResponse(card))
	}

	common.WriteJSON(w, http.StatusOK, common.ListResponse("credit_cards", response, total, params))
}

// GetCard returns the card together with its current-month summary.
func (h *Handlers) GetCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	cardID := chi.URLParam(r, "id")
	card, err := h.Cards.GetCard(r.Context(), userID, cardID)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "credit_cards.get: get card failed", err, "user_id", userID, "credit_card_id", cardID)
		return
	}

	summary, err := h.Summaries.CreditCardSummary(r.Context(), card)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "credit_cards.get: summary failed", err, "user_id", userID, "credit_card_id", cardID)
		return
	}

	response := cardSummaryResponse{
		MonthStart:     common.FormatDate(summary.MonthStart),
		MonthEnd:       common.FormatDate(summary.MonthEnd),
		MonthTotal:     summary.MonthTotal,
		MonthCount:     summary.MonthCount,
		AvailableLimit: summary.AvailableLimit,
	}
	if summary.LastPayment != nil {
		response.LastPayment = &lastPaymentResponse{
			ID:            summary.LastPayment.ID,
			Amount:        summary.LastPayment.Amount,
			PaymentDate:   common.FormatDate(summary.LastPayment.PaymentDate),
			PaymentMethod: summary.LastPayment.PaymentMethod,
		}
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"credit_card": toCardResponse(*card),
		"summary":     response,
	})
}

func (h *Handlers) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	created, err := h.Cards.CreateCard(r.Context(), creditcarddomain.CreateInput{
		UserID:      userID,
		BankName:    req.BankName,
		CardNumber:  req.CardNumber,
		CardType:    req.CardType,
		LimitAmount: req.LimitAmount,
		DueDate:     req.DueDate,
		IsActive:    req.IsActive,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "credit_cards.create: create card failed", err, "user_id", userID)
		return
	}

	common.WriteJSON(w, http.StatusCreated, common.MutationResponse("Credit card created successfully", "credit_card", toCardResponse(*created)))
}

func (h *Handlers) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var req updateCardRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	cardID := chi.URLParam(r, "id")
	updated, err := h.Cards.UpdateCard(r.Context(), creditcarddomain.UpdateInput{
		UserID:      userID,
		CardID:      cardID,
		BankName:    req.BankName,
		CardNumber:  req.CardNumber,
		CardType:    req.CardType,
		LimitAmount: creditcarddomain.OptionalFloat{Set: req.LimitAmount.Set, Value: req.LimitAmount.Value},
		DueDate:     req.DueDate,
		IsActive:    req.IsActive,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "credit_cards.update: update card failed", err, "user_id", userID, "credit_card_id", cardID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.MutationResponse("Credit card updated successfully", "credit_card", toCardResponse(*updated)))
}

func (h *Handlers) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	cardID := chi.URLParam(r, "id")
	if err := h.Cards.DeleteCard(r.Context(), userID, cardID); err != nil {
		common.WriteDomainError(w, r, h.log, "credit_cards.delete: delete card failed", err, "user_id", userID, "credit_card_id", cardID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.MessageResponse("Credit card deleted successfully"))
}
