package expenses

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	categorydomain "github.com/saurabhsolanke/expensify-be/internal/domain/category"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/common"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/middleware"
)

type categoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCategoryResponse(category categorydomain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		IsDefault: category.IsDefault,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func toCategoryResponses(categories []categorydomain.Category) []categoryResponse {
	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	return response
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	categories, err := h.Categories.ListCategories(r.Context(), userID)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "categories.list: list categories failed", err, "user_id", userID)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": toCategoryResponses(categories)})
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	categoryID := chi.URLParam(r, "id")
	category, err := h.Categories.GetCategory(r.Context(), userID, categoryID)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "categories.get: get category failed", err, "user_id", userID, "category_id", categoryID)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"category": toCategoryResponse(*category)})
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	created, err := h.Categories.CreateCategory(r.Context(), categorydomain.CreateInput{
		UserID: userID,
		Name:   stringValue(req.Name),
		Color:  req.Color,
		Icon:   req.Icon,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "categories.create: create category failed", err, "user_id", userID)
		return
	}

	common.WriteJSON(w, http.StatusCreated, common.MutationResponse("Category created successfully", "category", toCategoryResponse(*created)))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteInvalidJSON(w)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	categoryID := chi.URLParam(r, "id")
	updated, err := h.Categories.UpdateCategory(r.Context(), categorydomain.UpdateInput{
		UserID:     userID,
		CategoryID: categoryID,
		Name:       req.Name,
		Color:      req.Color,
		Icon:       req.Icon,
	})
	if err != nil {
		common.WriteDomainError(w, r, h.log, "categories.update: update category failed", err, "user_id", userID, "category_id", categoryID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.MutationResponse("Category updated successfully", "category", toCategoryResponse(*updated)))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	categoryID := chi.URLParam(r, "id")
	if err := h.Categories.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		common.WriteDomainError(w, r, h.log, "categories.delete: delete category failed", err, "user_id", userID, "category_id", categoryID)
		return
	}

	common.WriteJSON(w, http.StatusOK, common.MessageResponse("Category deleted successfully"))
}

func (h *Handlers) SetupDefaultCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		common.WriteUnauthorized(w)
		return
	}

	created, err := h.Categories.SetupDefaults(r.Context(), userID)
	if err != nil {
		common.WriteDomainError(w, r, h.log, "categories.setup_defaults: seed failed", err, "user_id", userID)
		return
	}

	common.WriteJSON(w, http.StatusCreated, common.MutationResponse("Default categories created successfully", "categories", toCategoryResponses(created)))
}
