package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/models"
)

// OrderResponse is an order together with the item it bought.
type OrderResponse struct {
	OrderID            uuid.UUID  `json:"order_id"         example:"30000000-0000-0000-0000-000000000001"`
	ItemID             uuid.UUID  `json:"item_id"          example:"20000000-0000-0000-0000-000000000001"`
	ItemTitle          string     `json:"item_title"       example:"Calculus II Textbook"`
	ItemPrice          string     `json:"item_price"       example:"45.00"`
	MeetingLocation    string     `json:"meeting_location" example:"Barr Smith Library"`
	MeetingScheduledAt *time.Time `json:"meeting_scheduled_at,omitempty"`
	DeliveryMethod     string     `json:"delivery_method"  example:"InPerson"`
	PaymentProvider    string     `json:"payment_provider" example:"None"`
	Status             string     `json:"status"           example:"Pending"`
	Total              string     `json:"total"            example:"45.00"`
	CreatedAt          time.Time  `json:"created_at"       example:"2025-03-02T10:00:00Z"`
} // @name OrderResponse

// OrderListResponse wraps the buyer's orders.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
} // @name OrderListResponse

func toOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		OrderID:            o.ID,
		MeetingLocation:    o.MeetingLocation,
		MeetingScheduledAt: o.MeetingScheduledAt,
		DeliveryMethod:     string(o.DeliveryMethod),
		PaymentProvider:    string(o.PaymentProvider),
		Status:             string(o.Status),
		Total:              o.Total.StringFixed(2),
		CreatedAt:          o.CreatedAt,
	}
	// Orders carry exactly one line today.
	if len(o.Lines) > 0 {
		line := o.Lines[0]
		resp.ItemID = line.ItemID
		resp.ItemTitle = line.ItemTitle
		resp.ItemPrice = line.Price.StringFixed(2)
	}
	return resp
}

func buyer(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	return userID, true
}
