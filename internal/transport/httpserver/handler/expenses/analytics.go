package expenses

import (
	"net/http"

	analyticsdomain "github.com/saurabhsolanke/expensify-be/internal/domain/analytics"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/common"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/middleware"
)

type summaryResponse struct {
	TotalAmount   float64                `json:"total_amount"`
	TotalCount    int64                  `json:"total_count"`
	ByCategory    []categoryTotalItem    `json:"by_category"`
	ByPaymentMode []paymentModeTotalItem `json:"by_payment_mode"`
	MonthlyTrend  []monthTotalItem       `json:"monthly_trend"`
}

type categoryTotalItem struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Icon       string  `json:"icon"`
	Total      float64 `json:"total"`
	Count      int64   `json:"count"`
}

type paymentModeTotalItem struct {
	PaymentMode string  `json:"payment_mode"`
	Total       float64 `json:"total"`
	Count       int64   `json:"count"`
}

type monthTotalItem struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

func (h *Handlers) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	from, to, err := common.ParseDateRange(r.URL.Query())
	if err != nil {
		common.WriteDomainError(w, r, h.log, "analytics.summary: invalid range", err, "user_id", userID)
		return
	}

	summary, err := h.Analytics.ExpenseSummary(r.Context(), userID, analyticsdomain.DateRange{From: from, To: to})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "analytics.summary: summary failed", err, "user_id", userID)
		return
	}

	response := summaryResponse{
		TotalAmount:   summary.TotalAmount,
		TotalCount:    summary.TotalCount,
		ByCategory:    make([]categoryTotalItem, 0, len(summary.ByCategory)),
		ByPaymentMode: make([]paymentModeTotalItem, 0, len(summary.ByPaymentMode)),
		MonthlyTrend:  make([]monthTotalItem, 0, len(summary.MonthlyTrend)),
	}
	for _, item := range summary.ByCategory {
		response.ByCategory = append(response.ByCategory, categoryTotalItem(item))
	}
	for _, item := range summary.ByPaymentMode {
		response.ByPaymentMode = append(response.ByPaymentMode, paymentModeTotalItem(item))
	}
	for _, item := range summary.MonthlyTrend {
		response.MonthlyTrend = append(response.MonthlyTrend, monthTotalItem(item))
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"summary": response})
}
