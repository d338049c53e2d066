package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
)

type LogoutHandler struct {
	store sessions.Store
	log   logger.Logger
}

func NewLogoutHandler(store sessions.Store, log logger.Logger) *LogoutHandler {
	return &LogoutHandler{store: store, log: log}
}

// Execute ends the cookie session. Bearer tokens stay valid until expiry.
//
//	@Summary	Log out
//	@Tags		auth
//	@Success	204
//	@Router		/auth/logout [post]
func (h *LogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := auth.EndSession(w, r, h.store); err != nil {
			h.log.WarnContext(r.Context(), "session not ended", "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
