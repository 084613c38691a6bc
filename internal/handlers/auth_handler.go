package handlers

import (
	"encoding/json"
	"net/http"

	"shipdash-backend/internal/middleware"
	"shipdash-backend/internal/models"
	"shipdash-backend/internal/upstream"
	"shipdash-backend/pkg/utils"
)

type AuthHandler struct {
	API *upstream.Client
}

func NewAuthHandler(api *upstream.Client) *AuthHandler {
	return &AuthHandler{API: api}
}

// Login handles POST /auth/login by forwarding the credentials to the
// upstream auth service. This service never sees password hashes or
// user records; it only relays the token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.API.Login(r.Context(), req)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, token)
}

// Me handles GET /api/me, answering from the validated token claims
// without an upstream round trip.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.GetEmailFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	utils.JSON(w, http.StatusOK, map[string]string{
		"email": email,
		"role":  role,
	})
}
