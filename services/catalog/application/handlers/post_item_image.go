package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
)

// PostItemImageHandler handles POST /items/{itemID}/images.
type PostItemImageHandler struct {
	svc       *appsvcs.Services
	maxUpload int64
}

func NewPostItemImageHandler(svc *appsvcs.Services, maxUpload int64) *PostItemImageHandler {
	return &PostItemImageHandler{svc: svc, maxUpload: maxUpload}
}

// Execute appends an image to an item owned by the caller.
//
//	@Summary		Upload item image
//	@Description	Accepts jpeg, png, gif or webp. The image is placed after the existing ones.
//	@Tags			items
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			itemID	path		string	true	"Item ID"	format(uuid)
//	@Param			file	formData	file	true	"Image file"
//	@Success		201		{object}	ImageResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		409		{object}	httpx.ErrorResponse	"Unsupported image format"
//	@Failure		413		{object}	httpx.ErrorResponse
//	@Failure		502		{object}	httpx.ErrorResponse	"Object storage failure"
//	@Router			/items/{itemID}/images [post]
func (h *PostItemImageHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := actingUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	if !parseMultipart(w, r, h.maxUpload) {
		return
	}

	_, fh, err := r.FormFile("file")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "file is required")
		return
	}
	if err := checkFileName(fh); err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	up, f, err := openUpload(fh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	defer f.Close() //nolint:errcheck

	img, err := h.svc.Image.UploadImage(r.Context(), itemID, sellerID, up)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toImageResponse(*img))
}
