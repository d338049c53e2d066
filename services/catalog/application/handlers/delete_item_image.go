package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
)

// DeleteItemImageHandler handles DELETE /items/{itemID}/images/{imageID}.
type DeleteItemImageHandler struct {
	svc *appsvcs.Services
}

func NewDeleteItemImageHandler(svc *appsvcs.Services) *DeleteItemImageHandler {
	return &DeleteItemImageHandler{svc: svc}
}

// Execute removes an image and closes the gap in the sort order.
//
//	@Summary	Delete item image
//	@Tags		items
//	@Security	BearerAuth
//	@Param		itemID	path	string	true	"Item ID"	format(uuid)
//	@Param		imageID	path	string	true	"Image ID"	format(uuid)
//	@Success	204
//	@Failure	400	{object}	httpx.ErrorResponse
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	403	{object}	httpx.ErrorResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/items/{itemID}/images/{imageID} [delete]
func (h *DeleteItemImageHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	imageID, ok := pathID(w, r, "imageID")
	if !ok {
		return
	}

	if err := h.svc.Image.DeleteImage(r.Context(), itemID, imageID, sellerID); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
