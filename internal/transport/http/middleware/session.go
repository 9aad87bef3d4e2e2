package middleware

import (
	"context"
	"net/http"

	"github.com/synapsehub/support-portal/internal/application/session"
	jwtinfra "github.com/synapsehub/support-portal/internal/infrastructure/jwt"
)

type contextKey string

const sessionKey contextKey = "session"

// CookieName carries the signed session token.
const CookieName = "synapse_session"

// Session resolves the client's session from the signed cookie, creating a
// fresh one (and setting the cookie) when the cookie is missing, invalid or
// refers to an expired session. The session is injected into the request
// context; the verifier and the submission gate observe the same instance
// across a client's requests.
func Session(mgr *session.Manager, provider *jwtinfra.Provider, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session

			if c, err := r.Cookie(CookieName); err == nil {
				if claims, err := provider.Verify(c.Value); err == nil {
					sess, _ = mgr.Get(claims.SessionID)
				}
			}

			if sess == nil {
				sess = mgr.Create()
				token, err := provider.Sign(sess.ID)
				if err != nil {
					writeJSONError(w, http.StatusInternalServerError, "could not establish session")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    token,
					Path:     "/",
					Expires:  sess.ExpiresAt,
					HttpOnly: true,
					Secure:   secureCookies,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the client session from the request context.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok
}
