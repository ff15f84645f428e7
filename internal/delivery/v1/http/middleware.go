package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

type ctxKey int

const (
	ctxKeySessionID ctxKey = iota
	ctxKeyUser
)

const sessionCookieName = "sid"

// sessionIDFromCtx возвращает идентификатор покупательской сессии запроса.
func sessionIDFromCtx(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKeySessionID).(string)
	return sid
}

// userFromCtx возвращает аутентифицированного пользователя запроса.
func userFromCtx(ctx context.Context) *usecase.UserInfo {
	user, _ := ctx.Value(ctxKeyUser).(*usecase.UserInfo)
	return user
}

// WithSession выдает анонимной сессии sid-cookie и кладет его в контекст.
// Корзина и покупательская сессия ключуются этим идентификатором.
func WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sid,
				Path:     "/",
				Expires:  time.Now().Add(30 * 24 * time.Hour),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ctxKeySessionID, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthMiddleware резолвит bearer-токены и охраняет админские маршруты.
type AuthMiddleware struct {
	authUC usecase.AuthUC
	logger logger.Logger
}

func NewAuthMiddleware(authUC usecase.AuthUC, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC, logger: logger}
}

// RequireUser пропускает только запросы с валидным bearer-токеном.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin дополнительно требует role == "admin".
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			WriteError(w, err)
			return
		}

		if user.Role != domain.RoleAdmin {
			m.logger.Warnf("admin route denied. user: %s, role: %s", user.Email, user.Role)
			WriteError(w, e.ErrNotAdmin)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) resolve(r *http.Request) (*usecase.UserInfo, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, e.ErrTokenExpired
	}

	user, err := m.authUC.UserByToken(r.Context(), token)
	if err != nil {
		return nil, err
	}

	return user, nil
}
