package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	pkgvalidator "github.com/bookmountain/adelaide-uni-market-place/pkg/validator"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/identity/application/services"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email" example:"student@adelaide.edu.au"`
	Password string `json:"password" validate:"required"       example:"ChangeMe123!"`
} // @name LoginRequest

// LoginHandler handles POST /auth/login. Besides the bearer token in the
// body it sets the session cookie, when a session store is configured.
type LoginHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
	log   logger.Logger
}

func NewLoginHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *LoginHandler {
	return &LoginHandler{svc: svc, store: store, log: log}
}

// Execute signs an active user in.
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		LoginRequest	true	"Credentials"
//	@Success	200		{object}	AuthResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	401		{object}	httpx.ErrorResponse	"Invalid credentials or inactive account"
//	@Failure	422		{object}	httpx.ValidationErrorResponse
//	@Router		/auth/login [post]
func (h *LoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	res, err := h.svc.User.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if h.store != nil {
		p := auth.Principal{UserID: res.User.ID, Email: res.User.Email, Role: res.User.Role}
		if err := auth.StartSession(w, r, h.store, p); err != nil {
			h.log.WarnContext(r.Context(), "session not started", "user_id", res.User.ID, "error", err)
		}
	}
	httpx.JSON(w, http.StatusOK, toAuthResponse(res))
}
