package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the token owner in the
// request context under [utils.UsernameCtxKey]. The request logger is tagged
// with the same username.
//
// Requests are rejected with HTTP 401 Unauthorized when the header is
// missing or malformed, or when the token is expired, invalid or belongs to
// a user that no longer exists.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, log, err, "error occurred during parsing token")
			return
		}

		userLog := log.WithUser(token.Username)
		ctx = context.WithValue(ctx, utils.UsernameCtxKey, token.Username)
		ctx = userLog.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly lets through only the configured administrator. It must run
// after auth.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		username, ok := utils.GetUsernameFromContext(r.Context())
		if !ok {
			writeError(w, log, ErrNoUserInContext, "admin guard without authenticated user")
			return
		}

		if !h.services.AuthService.IsAdmin(username) {
			writeError(w, log, ErrAdminOnly, "admin route called by a regular user")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" header value of the form "Bearer <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}

// requestUser returns the authenticated username or writes 401.
func requestUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		writeError(w, logger.FromRequest(r), ErrNoUserInContext, "missing user in request context")
		return "", false
	}
	return username, true
}
