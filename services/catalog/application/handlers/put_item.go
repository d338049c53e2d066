package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	pkgvalidator "github.com/bookmountain/adelaide-uni-market-place/pkg/validator"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
	domainsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/services"
)

// UpdateItemRequest is the request body for PUT /items/{itemID}.
type UpdateItemRequest struct {
	CreateItemRequest
	Status string `json:"status" validate:"required" example:"Active" enums:"Draft,Active,Sold,Archived"`
} // @name UpdateItemRequest

// PutItemHandler handles PUT /items/{itemID}.
type PutItemHandler struct {
	svc *appsvcs.Services
}

func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// Execute overwrites an item owned by the caller.
//
//	@Summary		Update item
//	@Description	Replaces the editable fields. Items owned by someone else are reported as not found.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			itemID	path		string				true	"Item ID"	format(uuid)
//	@Param			request	body		UpdateItemRequest	true	"Item update"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		422		{object}	httpx.ValidationErrorResponse
//	@Router			/items/{itemID} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.UpdateItem(r.Context(), itemID, sellerID, domainsvcs.ItemUpdate{
		ListingInput: req.listing(),
		Status:       req.Status,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
