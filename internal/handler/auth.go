package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/pkg/response"
)

type AuthHandler struct {
	service   AuthService
	validator *validator.Validate
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, resp)
}
