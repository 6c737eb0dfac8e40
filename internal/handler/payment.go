package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/pkg/response"
)

type PaymentHandler struct {
	service   PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(service PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// ListPayments handles GET /api/payments?status=&tenant_id=&room_id=
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.PaymentFilter{Status: domain.PaymentStatus(query.Get("status"))}

	for key, dst := range map[string]*int64{"tenant_id": &filter.TenantID, "room_id": &filter.RoomID} {
		raw := query.Get(key)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid "+key, err)
			return
		}
		*dst = id
	}

	payments, err := h.service.ListPayments(r.Context(), filter)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, payments)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	payment, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, payment)
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePaymentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Created(w, payment)
}

// MarkAsPaid handles POST /api/payments/{id}/mark-paid. The body is optional.
func (h *PaymentHandler) MarkAsPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.MarkAsPaidRequest
	if r.ContentLength != 0 {
		if !decodeAndValidate(w, r, h.validator, &req) {
			return
		}
	}

	payment, err := h.service.MarkAsPaid(r.Context(), id, req.PaymentMethod)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, payment)
}

func (h *PaymentHandler) AddInstallment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.AddInstallmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	payment, err := h.service.AddPayment(r.Context(), id, req.Amount, req.PaymentMethod, req.Notes)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, payment)
}

func (h *PaymentHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.service.Overdue(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, overdue)
}

func (h *PaymentHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, report)
}

// TenantPayments handles GET /api/tenants/{id}/payments (unpaid bills only)
func (h *PaymentHandler) TenantPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	unpaid, err := h.service.TenantUnpaid(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, unpaid)
}

func (h *PaymentHandler) TenantSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.service.TenantSummary(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, summary)
}

func (h *PaymentHandler) RoomSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.service.RoomSummary(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, summary)
}
