package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/exceptions"
	"somnolink-service/internal/pkg/utils"

	"github.com/golang-jwt/jwt/v4"
)

// principalClaims is the token shape issued by the identity provider: the
// subject is the user id and the role claim its single platform role.
type principalClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate verifies the bearer token and attaches the resulting principal
// to the request context. Every protected route sits behind this.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constvars.HeaderAuthorization)
		if header == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		claims := new(principalClaims)
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.InternalConfig.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}
		if claims.Subject == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(fmt.Errorf("token has no subject")))
			return
		}

		principal := models.Principal{
			ID:   claims.Subject,
			Role: claims.Role,
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_PRINCIPAL_KEY, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePatient restricts the route to principals holding the patient role.
func (m *Middlewares) RequirePatient(next http.Handler) http.Handler {
	return m.requireRole(constvars.RolePatient, next)
}

// RequirePractitioner restricts the route to principals holding the
// practitioner role.
func (m *Middlewares) RequirePractitioner(next http.Handler) http.Handler {
	return m.requireRole(constvars.RolePractitioner, next)
}

func (m *Middlewares) requireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
		if !ok {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		if principal.Role != role {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrNotMatchRoleType(fmt.Errorf("route requires %s role", role)))
			return
		}
		next.ServeHTTP(w, r)
	})
}
