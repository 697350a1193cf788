package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Self-registration must not mint privileged accounts; requesting any role
// other than kasir is rejected before the account is created.
func TestRegister_RefusesRoleEscalation(t *testing.T) {
	h := AuthHandler{}

	for _, role := range []string{"admin", "manager", "root"} {
		body := `{"username":"mallory","password":"pw","role":"` + role + `"}`
		req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.register(rec, req)
		require.Equal(t, 403, rec.Code, "role %s", role)
	}
}

func TestRegister_RequiresCredentials(t *testing.T) {
	h := AuthHandler{}

	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(`{"username":"","password":""}`))
	rec := httptest.NewRecorder()
	h.register(rec, req)
	require.Equal(t, 400, rec.Code)
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	h := AuthHandler{}

	req := httptest.NewRequest("POST", "/users", strings.NewReader(`{"username":"siti","password":"pw","role":"owner"}`))
	rec := httptest.NewRecorder()
	h.createUser(rec, req)
	require.Equal(t, 400, rec.Code)
}
