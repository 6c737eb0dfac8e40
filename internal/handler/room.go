package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/pkg/response"
)

// RoomHandler registers rooms and tenants
type RoomHandler struct {
	service   RoomService
	validator *validator.Validate
}

func NewRoomHandler(service RoomService) *RoomHandler {
	return &RoomHandler{
		service:   service,
		validator: NewValidator(),
	}
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRoomRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Created(w, room)
}

func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	room, err := h.service.GetRoom(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, room)
}

func (h *RoomHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTenantRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	tenant, err := h.service.CreateTenant(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Created(w, tenant)
}

func (h *RoomHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tenant, err := h.service.GetTenant(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, tenant)
}
