package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
)

// GetItemHandler handles GET /items/{itemID}.
type GetItemHandler struct {
	svc *appsvcs.Services
}

func NewGetItemHandler(svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{svc: svc}
}

// Execute returns one item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		itemID	path		string	true	"Item ID"	format(uuid)
//	@Success	200		{object}	ItemResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Router		/items/{itemID} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	item, err := h.svc.Item.GetItem(r.Context(), itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
