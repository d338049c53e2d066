package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/repositories"
)

// ListItemsHandler handles GET /items.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists items, newest first.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit	query		int	false	"Page size (1-100)"	default(20)
//	@Param		offset	query		int	false	"Items to skip"		default(0)
//	@Success	200		{object}	ItemListResponse
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Router		/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	page := httpx.PageParams(r)
	items, total, err := h.svc.Item.ListItems(r.Context(), repositories.QueryOpts{
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ItemListResponse{
		Items:  make([]ItemResponse, len(items)),
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for i, item := range items {
		resp.Items[i] = toItemResponse(item)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
