package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/ordering/application/services"
)

// ListOrdersHandler handles GET /orders.
type ListOrdersHandler struct {
	svc *appsvcs.Services
}

func NewListOrdersHandler(svc *appsvcs.Services) *ListOrdersHandler {
	return &ListOrdersHandler{svc: svc}
}

// Execute lists the caller's orders, newest first.
//
//	@Summary	List my orders
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	OrderListResponse
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Router		/orders [get]
func (h *ListOrdersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := buyer(w, r)
	if !ok {
		return
	}

	orders, err := h.svc.Order.ListOrders(r.Context(), buyerID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := OrderListResponse{Orders: make([]OrderResponse, len(orders))}
	for i, o := range orders {
		resp.Orders[i] = toOrderResponse(o)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
