package handler

import (
	"net/http"

	"github.com/BuzzLyutic/tasklists/internal/auth"
	"github.com/BuzzLyutic/tasklists/pkg/respond"
)

// SessionHandler stores an already-issued token in the session cookie so a
// browser can use the pages.
type SessionHandler struct {
	issuer *auth.Issuer
	pages  *PageHandler
	secure bool
}

func NewSessionHandler(issuer *auth.Issuer, pages *PageHandler, secureCookies bool) *SessionHandler {
	return &SessionHandler{issuer: issuer, pages: pages, secure: secureCookies}
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if _, err := h.issuer.Parse(token); err != nil {
		h.pages.Unauthorized(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	respond.SeeOther(w, r, "/dashboard")
}
