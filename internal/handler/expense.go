package handler

import (
	"net/http"

	"github.com/segyhp/kos-management/pkg/response"
)

type ExpenseHandler struct {
	service ExpenseService
}

func NewExpenseHandler(service ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// Notify handles POST /api/expenses/{id}/notify. The reminder runs on the
// worker; the response only confirms it was queued.
func (h *ExpenseHandler) Notify(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	job, err := h.service.EnqueueReminder(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Accepted(w, map[string]any{
		"job_id":     job.ID,
		"expense_id": id,
	})
}
