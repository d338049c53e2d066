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
	catalogdomain "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain"
	domainsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/services"
)

// createItemForm holds the text fields of POST /items/with-images.
type createItemForm struct {
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	Title       string `json:"title"       validate:"required,max=160"`
	Description string `json:"description" validate:"required"`
	Price       string `json:"price"       validate:"required,money"`
}

// PostItemWithImagesHandler handles POST /items/with-images.
type PostItemWithImagesHandler struct {
	svc       *appsvcs.Services
	maxUpload int64
}

func NewPostItemWithImagesHandler(svc *appsvcs.Services, maxUpload int64) *PostItemWithImagesHandler {
	return &PostItemWithImagesHandler{svc: svc, maxUpload: maxUpload}
}

// Execute creates an item and attaches the uploaded images in the order they
// appear in the form. Every file's type is checked before anything is written.
//
//	@Summary	Create item with images
//	@Tags		items
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		category_id	formData	string	true	"Category ID"	format(uuid)
//	@Param		title		formData	string	true	"Title"
//	@Param		description	formData	string	true	"Description"
//	@Param		price		formData	string	true	"Price"	example(45.00)
//	@Param		images		formData	file	false	"Image files, repeatable"
//	@Success	201			{object}	ItemResponse
//	@Failure	400			{object}	httpx.ErrorResponse
//	@Failure	401			{object}	httpx.ErrorResponse
//	@Failure	404			{object}	httpx.ErrorResponse	"Unknown category"
//	@Failure	409			{object}	httpx.ErrorResponse	"Unsupported image format"
//	@Failure	422			{object}	httpx.ValidationErrorResponse
//	@Failure	502			{object}	httpx.ErrorResponse
//	@Router		/items/with-images [post]
func (h *PostItemWithImagesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	if !parseMultipart(w, r, h.maxUpload) {
		return
	}

	form := createItemForm{
		CategoryID:  r.FormValue("category_id"),
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
	}
	if err := pkgvalidator.Validate(&form); err != nil {
		pkgvalidator.WriteError(w, err)
		return
	}

	files := r.MultipartForm.File["images"]
	for _, fh := range files {
		if err := checkFileName(fh); err != nil {
			httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if !domainsvcs.IsSupportedImageType(fh.Header.Get("Content-Type")) {
			errhttp.WriteError(w, catalogdomain.ErrUnsupportedFormat)
			return
		}
	}

	price, _ := decimal.NewFromString(form.Price)
	item, err := h.svc.Item.CreateItem(r.Context(), sellerID, domainsvcs.ListingInput{
		CategoryID:  uuid.MustParse(form.CategoryID),
		Title:       form.Title,
		Description: form.Description,
		Price:       price,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	// A failed upload leaves the item listed with the images stored so far.
	for _, fh := range files {
		up, f, err := openUpload(fh)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		img, err := h.svc.Image.UploadImage(r.Context(), item.ID, sellerID, up)
		_ = f.Close()
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		item.Images = append(item.Images, *img)
	}

	w.Header().Set("Location", "/api/items/"+item.ID.String())
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}

