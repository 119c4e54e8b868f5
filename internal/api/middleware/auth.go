package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
)

type sessionCtxKey struct{}

const (
	msgMissingToken = "Требуется аутентификация: отсутствует токен"
	msgInvalidToken = "Недействительный токен"
	msgExpiredToken = "Сессия истекла, войдите заново"
)

// SessionClaims — полезная нагрузка токена сессии.
// Выпускается StaffService при логине сотрудника.
type SessionClaims struct {
	StaffID     int64    `json:"staffId"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// NewAuth возвращает middleware, проверяющий Bearer-токен (HS256).
// При успехе кладёт domain.Session в контекст запроса.
func NewAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				unauthorized(w, msgMissingToken)
				return
			}

			claims := &SessionClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					unauthorized(w, msgExpiredToken)
					return
				}
				unauthorized(w, msgInvalidToken)
				return
			}
			if !token.Valid || claims.StaffID == 0 {
				unauthorized(w, msgInvalidToken)
				return
			}

			session := &domain.Session{
				StaffID:     claims.StaffID,
				Name:        claims.Name,
				Role:        domain.StaffRole(claims.Role),
				Permissions: claims.Permissions,
				Token:       raw,
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext достаёт сессию, положенную NewAuth.
// Возвращает nil для запросов вне защищённого роутера.
func SessionFromContext(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionCtxKey{}).(*domain.Session)
	return session
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
