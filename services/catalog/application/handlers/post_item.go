package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	pkgvalidator "github.com/bookmountain/adelaide-uni-market-place/pkg/validator"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
	domainsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/services"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	CategoryID  uuid.UUID       `json:"category_id" validate:"required"           example:"00000000-0000-0000-0000-000000000101"`
	Title       string          `json:"title"       validate:"required,max=160"   example:"Calculus II Textbook"`
	Description string          `json:"description" validate:"required"           example:"Lightly highlighted, great condition."`
	Price       decimal.Decimal `json:"price"       validate:"required,money"     swaggertype:"string" example:"45.00"`
} // @name CreateItemRequest

func (r *CreateItemRequest) listing() domainsvcs.ListingInput {
	return domainsvcs.ListingInput{
		CategoryID:  r.CategoryID,
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Price:       r.Price,
	}
}

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute lists a new item for the signed-in seller.
//
//	@Summary		Create item
//	@Description	Creates an Active listing owned by the caller
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse	"Unknown category"
//	@Failure		422		{object}	httpx.ValidationErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := actingUser(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.CreateItem(r.Context(), sellerID, req.listing())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.Header().Set("Location", "/api/items/"+item.ID.String())
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
