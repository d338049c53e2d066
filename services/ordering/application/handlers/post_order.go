package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	pkgvalidator "github.com/bookmountain/adelaide-uni-market-place/pkg/validator"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/ordering/application/services"
	domainsvcs "github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/services"
)

// CreateOrderRequest is the request body for POST /orders.
type CreateOrderRequest struct {
	ItemID             uuid.UUID  `json:"item_id"              validate:"required"         example:"20000000-0000-0000-0000-000000000001"`
	MeetingLocation    string     `json:"meeting_location"     validate:"required,max=256" example:"Barr Smith Library"`
	MeetingScheduledAt *time.Time `json:"meeting_scheduled_at,omitempty"                   example:"2025-03-03T12:00:00Z"`
} // @name CreateOrderRequest

// PostOrderHandler handles POST /orders.
type PostOrderHandler struct {
	svc *appsvcs.Services
}

func NewPostOrderHandler(svc *appsvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute buys an Active item for the caller.
//
//	@Summary		Place order
//	@Description	Buys one Active item for an in-person meetup. The item becomes Sold.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateOrderRequest	true	"Order request"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse	"Unknown item"
//	@Failure		409		{object}	httpx.ErrorResponse	"Item not available or own item"
//	@Failure		422		{object}	httpx.ValidationErrorResponse
//	@Router			/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := buyer(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateOrderRequest](w, r)
	if !ok {
		return
	}

	order, err := h.svc.Order.CreateOrder(r.Context(), buyerID, domainsvcs.OrderInput{
		ItemID:             req.ItemID,
		MeetingLocation:    strings.TrimSpace(req.MeetingLocation),
		MeetingScheduledAt: req.MeetingScheduledAt,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.Header().Set("Location", "/api/orders/"+order.ID.String())
	httpx.JSON(w, http.StatusCreated, toOrderResponse(order))
}
