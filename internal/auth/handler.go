package auth

import (
	"log/slog"
	"net/http"
	"strings"
)

const bearer = "Bearer "

type authHandler struct {
	inner  http.Handler
	issuer *Issuer
	log    *slog.Logger
}

// Handler gets the claims from the JWT in the HTTP Authorization header and
// adds them to the request context so that resolvers can check them.
// Requests without a valid token carry on anonymously.
func Handler(issuer *Issuer, log *slog.Logger, inner http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return &authHandler{inner: inner, issuer: issuer, log: log}
}

func (h *authHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.inner.ServeHTTP(w, func(r *http.Request) *http.Request {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, bearer) {
			return r // no auth hdr
		}
		claims, err := h.issuer.Verify(r.Context(), strings.TrimSpace(authHeader[len(bearer):]))
		if err != nil {
			h.log.DebugContext(r.Context(), "ignoring invalid token", "error", err)
			return r
		}
		return r.WithContext(WithClaims(r.Context(), claims))
	}(r))
}
