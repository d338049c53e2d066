package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
)

// ItemResponse is a listing with its images in display order.
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"            example:"20000000-0000-0000-0000-000000000001"`
	CategoryID   uuid.UUID       `json:"category_id"   example:"00000000-0000-0000-0000-000000000101"`
	CategoryName string          `json:"category_name" example:"Textbooks"`
	SellerID     uuid.UUID       `json:"seller_id"     example:"11111111-2222-3333-4444-555555555555"`
	Title        string          `json:"title"         example:"Calculus II Textbook"`
	Description  string          `json:"description"   example:"Lightly highlighted, great condition."`
	Price        string          `json:"price"         example:"45.00"`
	Status       string          `json:"status"        example:"Active"`
	CreatedAt    time.Time       `json:"created_at"    example:"2025-03-01T09:00:00Z"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
	Images       []ImageResponse `json:"images"`
} // @name ItemResponse

// ImageResponse is one listing photo.
type ImageResponse struct {
	ID        uuid.UUID `json:"id"         example:"21000000-0000-0000-0000-000000000001"`
	URL       string    `json:"url"        example:"https://images.example.com/items/1/01j8.jpg"`
	SortOrder int       `json:"sort_order" example:"1"`
} // @name ImageResponse

// ItemListResponse is one page of listings.
type ItemListResponse struct {
	Items  []ItemResponse `json:"items"`
	Total  int            `json:"total"  example:"42"`
	Limit  int            `json:"limit"  example:"20"`
	Offset int            `json:"offset" example:"0"`
} // @name ItemListResponse

// CategoryResponse is a browsing category.
type CategoryResponse struct {
	ID   uuid.UUID `json:"id"   example:"00000000-0000-0000-0000-000000000101"`
	Name string    `json:"name" example:"Textbooks"`
	Slug string    `json:"slug" example:"textbooks"`
} // @name CategoryResponse

func toItemResponse(item *models.Item) ItemResponse {
	images := make([]ImageResponse, len(item.Images))
	for i, img := range item.Images {
		images[i] = toImageResponse(img)
	}
	return ItemResponse{
		ID:           item.ID,
		CategoryID:   item.CategoryID,
		CategoryName: item.CategoryName,
		SellerID:     item.SellerID,
		Title:        item.Title.String(),
		Description:  item.Description,
		Price:        item.Price.StringFixed(2),
		Status:       item.Status.String(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
		Images:       images,
	}
}

func toImageResponse(img models.Image) ImageResponse {
	return ImageResponse{ID: img.ID, URL: img.URL, SortOrder: img.SortOrder}
}

// actingUser returns the authenticated user id or writes 401.
func actingUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a UUID path parameter or writes 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := httpx.UUIDParam(r, name)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
