package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
)

// DeleteItemHandler handles DELETE /items/{itemID}.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

// Execute removes an item owned by the caller together with its images.
//
//	@Summary	Delete item
//	@Tags		items
//	@Security	BearerAuth
//	@Param		itemID	path	string	true	"Item ID"	format(uuid)
//	@Success	204
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Failure	409	{object}	httpx.ErrorResponse	"Item is referenced by an order"
//	@Router		/items/{itemID} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.svc.Item.DeleteItem(r.Context(), itemID, sellerID); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
