package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	pkgvalidator "github.com/bookmountain/adelaide-uni-market-place/pkg/validator"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/identity/application/services"
)

// ResendActivationRequest is the request body for POST /auth/resend-activation.
type ResendActivationRequest struct {
	Email string `json:"email" validate:"required,email" example:"a1234567@adelaide.edu.au"`
} // @name ResendActivationRequest

type ResendActivationHandler struct {
	svc *appsvcs.Services
}

func NewResendActivationHandler(svc *appsvcs.Services) *ResendActivationHandler {
	return &ResendActivationHandler{svc: svc}
}

// Execute issues a fresh activation link for an inactive account.
//
//	@Summary	Resend activation email
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ResendActivationRequest	true	"Account email"
//	@Success	202		{object}	RegisterResponse
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Failure	409		{object}	httpx.ErrorResponse	"Already active"
//	@Failure	422		{object}	httpx.ValidationErrorResponse
//	@Failure	502		{object}	httpx.ErrorResponse
//	@Router		/auth/resend-activation [post]
func (h *ResendActivationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ResendActivationRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.User.ResendActivation(r.Context(), req.Email); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusAccepted, RegisterResponse{
		Email:   req.Email,
		Message: "email has been sent to " + req.Email,
	})
}
