package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	Service *service.AuthService
}

func (h AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Post("/auth/refresh", h.refresh)
}

// RegisterAdminRoutes mounts user administration under an admin-gated group.
func (h AuthHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/users", h.createUser)
}

// register is public and only ever creates kasir accounts. Admin accounts
// come from the seed CLI or the admin-gated /users route.
func (h AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeUser(w, r)
	if !ok {
		return
	}
	if req.Role != "" && domain.UserRole(req.Role) != domain.RoleKasir {
		writeError(w, http.StatusForbidden, "role not allowed on self-registration")
		return
	}
	h.create(w, r, req, domain.RoleKasir)
}

func (h AuthHandler) createUser(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeUser(w, r)
	if !ok {
		return
	}
	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.RoleKasir
	}
	if role != domain.RoleKasir && role != domain.RoleAdmin {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}
	h.create(w, r, req, role)
}

type userRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h AuthHandler) decodeUser(w http.ResponseWriter, r *http.Request) (userRequest, bool) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return req, false
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return req, false
	}
	return req, true
}

func (h AuthHandler) create(w http.ResponseWriter, r *http.Request, req userRequest, role domain.UserRole) {
	result, err := h.Service.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toAuthResponse(result))
}

func (h AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	result, err := h.Service.Login(r.Context(), service.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	result, err := h.Service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(res *service.AuthResult) map[string]any {
	return map[string]any{
		"accessToken":  res.AccessToken,
		"refreshToken": res.RefreshToken,
		"expiresAt":    res.ExpiresAt.Unix(),
		"user": map[string]any{
			"id":       res.User.ID,
			"name":     res.User.Name,
			"username": res.User.Username,
			"role":     res.User.Role,
		},
	}
}
