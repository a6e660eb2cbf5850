package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"CoopLink/internal/auth/token"
	"CoopLink/internal/core/sysconfig"
)

// Context keys for storing member information
type contextKey string

const (
	MemberNoKey contextKey = "member_no"
	ClaimsKey   contextKey = "jwt_claims"
)

// MemberAuthMiddleware enforces portal authentication for protected
// routes. Committee gates consult the access lists in sys_config.
type MemberAuthMiddleware struct {
	config sysconfig.Service
}

// NewMemberAuthMiddleware creates a new member auth middleware
func NewMemberAuthMiddleware(config sysconfig.Service) *MemberAuthMiddleware {
	return &MemberAuthMiddleware{config: config}
}

// RequireAuth ensures the request carries a valid access token.
// If not authenticated, returns 401.
// If authenticated, injects the member number and claims into context.
func (m *MemberAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		claims, err := token.Verify(authHeader, token.PurposeAccess)
		if err != nil {
			log.Printf("[AUTH_FAILURE] type=invalid_token ip=%s method=%s path=%s error=%v",
				getClientIP(r), r.Method, r.URL.Path, err)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), MemberNoKey, claims.MemberNo)
		ctx = context.WithValue(ctx, ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireElecom gates election committee endpoints. Must run after
// RequireAuth.
func (m *MemberAuthMiddleware) RequireElecom(next http.Handler) http.Handler {
	return m.requireListed(next, "elecom", m.config.IsElecomMember)
}

// RequireSurveyAdmin gates survey committee endpoints. Must run after
// RequireAuth.
func (m *MemberAuthMiddleware) RequireSurveyAdmin(next http.Handler) http.Handler {
	return m.requireListed(next, "survey", m.config.IsSurveyAdmin)
}

func (m *MemberAuthMiddleware) requireListed(next http.Handler, list string, check func(context.Context, string) (bool, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		memberNo := GetMemberNo(r)
		if memberNo == "" {
			writeAuthError(w, "Authentication required")
			return
		}

		allowed, err := check(r.Context(), memberNo)
		if err != nil {
			log.Printf("failed to check %s membership for %s: %v", list, memberNo, err)
			writeJSONError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
			return
		}
		if !allowed {
			log.Printf("[AUTH_FAILURE] type=forbidden list=%s member=%s path=%s", list, memberNo, r.URL.Path)
			writeJSONError(w, http.StatusForbidden, "NotAuthorized", "Committee access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetMemberNo extracts the authenticated member number from the request
// context. Returns empty string if not authenticated.
func GetMemberNo(r *http.Request) string {
	if memberNo, ok := r.Context().Value(MemberNoKey).(string); ok {
		return memberNo
	}
	return ""
}

// GetClaims extracts the token claims from the request context.
func GetClaims(r *http.Request) *token.Claims {
	if claims, ok := r.Context().Value(ClaimsKey).(*token.Claims); ok {
		return claims
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusUnauthorized, "AuthRequired", message)
}

func writeJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
