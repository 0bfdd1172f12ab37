package middleware

import (
	"context"
	"log"
	"net/http"
	"time"
	"wheel_backend/pkg/resp"
	"wheel_backend/pkg/token"

	"github.com/google/uuid"
)

// CookieName Имя cookie сессии
const CookieName = "wheel_session"

type ctxKey struct{}

// Session Достает id сессии из подписанной cookie. Нет cookie или она
// не проходит проверку - выдаем новую сессию
func Session(secretKey []byte, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(CookieName); err == nil {
				if claims, err := token.VerifySessionToken(c.Value, secretKey); err == nil {
					sessionID = claims.ID
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				tok, err := token.GenerateSessionToken(sessionID, secretKey, ttl)
				if err != nil {
					log.Printf("failed to sign session token: %v", err)
					resp.WriteJSONError(w, http.StatusInternalServerError, "session unavailable")
					return
				}
				setSessionCookie(w, tok, ttl)
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext id сессии, положенный middleware
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// WithSessionID Положить id сессии в контекст
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sessionID)
}

// setSessionCookie устанавливает cookie с токеном сессии
func setSessionCookie(w http.ResponseWriter, tok string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}
