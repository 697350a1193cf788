package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/server/authctx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func accessClaims(role domain.UserRole) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":        "7",
		"username":   "siti",
		"role":       string(role),
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
}

func TestAuthMiddleware_SetsCurrentUser(t *testing.T) {
	var got *authctx.CurrentUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = authctx.FromContext(r.Context())
	})
	h := AuthMiddleware(testSecret)(next)

	req := httptest.NewRequest("GET", "/customers", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, accessClaims(domain.RoleKasir)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	require.Equal(t, int64(7), got.ID)
	require.Equal(t, "siti", got.Username)
	require.Equal(t, domain.RoleKasir, got.Role)
}

func TestAuthMiddleware_RejectsMissingAndMalformed(t *testing.T) {
	h := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/customers", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("GET", "/customers", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Refresh tokens must not grant API access.
func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	h := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	claims := accessClaims(domain.RoleAdmin)
	claims["token_type"] = "refresh"
	req := httptest.NewRequest("GET", "/customers", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	guard := RequireRole(domain.RoleAdmin)(next)

	// kasir blocked from admin routes
	req := httptest.NewRequest("GET", "/payroll", nil)
	ctx := authctx.WithCurrentUser(req.Context(), authctx.CurrentUser{ID: 1, Username: "siti", Role: domain.RoleKasir})
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req.WithContext(ctx))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// admin allowed
	ctx = authctx.WithCurrentUser(req.Context(), authctx.CurrentUser{ID: 2, Username: "budi", Role: domain.RoleAdmin})
	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, req.WithContext(ctx))
	require.Equal(t, http.StatusNoContent, rec.Code)

	// anonymous blocked
	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
