package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/ordering/application/services"
)

// GetOrderHandler handles GET /orders/{orderID}.
type GetOrderHandler struct {
	svc *appsvcs.Services
}

func NewGetOrderHandler(svc *appsvcs.Services) *GetOrderHandler {
	return &GetOrderHandler{svc: svc}
}

// Execute returns one of the caller's orders.
//
//	@Summary	Get my order
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		orderID	path		string	true	"Order ID"	format(uuid)
//	@Success	200		{object}	OrderResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Router		/orders/{orderID} [get]
func (h *GetOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := buyer(w, r)
	if !ok {
		return
	}
	orderID, err := httpx.UUIDParam(r, "orderID")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.Order.GetOrder(r.Context(), orderID, buyerID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}
