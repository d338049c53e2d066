package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
)

// ListCategoriesHandler handles GET /categories.
type ListCategoriesHandler struct {
	svc *appsvcs.Services
}

func NewListCategoriesHandler(svc *appsvcs.Services) *ListCategoriesHandler {
	return &ListCategoriesHandler{svc: svc}
}

// Execute lists every category.
//
//	@Summary	List categories
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}		CategoryResponse
//	@Failure	500	{object}	httpx.ErrorResponse
//	@Router		/categories [get]
func (h *ListCategoriesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Item.ListCategories(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}
	httpx.JSON(w, http.StatusOK, resp)
}
