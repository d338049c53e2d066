package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/identity/application/services"
)

type ActivateHandler struct {
	svc *appsvcs.Services
}

func NewActivateHandler(svc *appsvcs.Services) *ActivateHandler {
	return &ActivateHandler{svc: svc}
}

// Execute redeems the token from an activation email.
//
//	@Summary	Activate account
//	@Tags		auth
//	@Produce	json
//	@Param		token	query		string	true	"Activation token"
//	@Success	200		{object}	AuthResponse
//	@Failure	404		{object}	httpx.ErrorResponse	"Unknown token"
//	@Failure	409		{object}	httpx.ErrorResponse	"Token expired"
//	@Failure	422		{object}	httpx.ErrorResponse	"Token missing"
//	@Router		/auth/activate [get]
func (h *ActivateHandler) Execute(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.User.Activate(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toAuthResponse(res))
}
