package handlers

import (
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	pkgvalidator "github.com/bookmountain/adelaide-uni-market-place/pkg/validator"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/identity/application/services"
)

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email,max=256"       example:"a1234567@adelaide.edu.au"`
	Password    string `json:"password"     validate:"required,min=8,max=72"        example:"ChangeMe123!"`
	DisplayName string `json:"display_name" validate:"required,max=128"             example:"Alex"`
	AvatarURL   string `json:"avatar_url"   validate:"omitempty,url,max=512"`
	Department  string `json:"department"   validate:"required"                     example:"ComputerScience"`
	Degree      string `json:"degree"       validate:"required"                     example:"Bachelor"`
	Sex         string `json:"sex"          validate:"required"                     example:"PreferNotToSay"`
	Nationality string `json:"nationality"                                          example:"Australia"`
	Age         *int   `json:"age"          validate:"omitempty,gte=16,lte=120"     example:"21"`
} // @name RegisterRequest

// RegisterHandler handles POST /auth/register.
type RegisterHandler struct {
	svc *appsvcs.Services
}

func NewRegisterHandler(svc *appsvcs.Services) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// Execute creates an inactive account and emails its activation link.
//
//	@Summary		Register
//	@Description	Only addresses on the allowed university domain may register. Enum fields accept common aliases.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Registration request"
//	@Success		201		{object}	RegisterResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		409		{object}	httpx.ErrorResponse	"Account already exists"
//	@Failure		422		{object}	httpx.ValidationErrorResponse
//	@Failure		502		{object}	httpx.ErrorResponse	"Activation email could not be sent"
//	@Router			/auth/register [post]
func (h *RegisterHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterRequest](w, r)
	if !ok {
		return
	}

	u, err := h.svc.User.Register(r.Context(), appsvcs.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		Department:  req.Department,
		Degree:      req.Degree,
		Sex:         req.Sex,
		Nationality: req.Nationality,
		Age:         req.Age,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, RegisterResponse{
		Email:   u.Email,
		Message: "email has been sent to " + u.Email,
	})
}
