package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"reservas/internal/service"
)

const SessionCookieName = "reservas_session"

type TokenVerifier interface {
	VerifyToken(token string) (*service.SessionClaims, error)
}

type ctxKey struct{}

// SessionMiddleware lets a request through only when it carries a valid session
// marker. Others are redirected to loginPath.
func SessionMiddleware(verifier TokenVerifier, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.VerifyToken(TokenFromRequest(r))
			if err != nil {
				ClearSessionCookie(w)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
		})
	}
}

// TokenFromRequest reads the session cookie, falling back to a Bearer header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func ClaimsFromContext(ctx context.Context) (*service.SessionClaims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*service.SessionClaims)
	return claims, ok
}

func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
