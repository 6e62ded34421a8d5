package http

import (
	"encoding/json"
	"net/http"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/service"
)

type PayoutHandler struct {
	payoutSvc service.PayoutService
	processor service.PayoutProcessor
}

func NewPayoutHandler(payoutSvc service.PayoutService, processor service.PayoutProcessor) *PayoutHandler {
	return &PayoutHandler{payoutSvc: payoutSvc, processor: processor}
}

type payoutCreateRequest struct {
	Amount         float64           `json:"amount"`
	PayoutMethod   string            `json:"payout_method"`
	AccountDetails map[string]string `json:"account_details"`
}

func (h *PayoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req payoutCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.payoutSvc.CreateRequest(r.Context(),
		ClaimsFrom(r.Context()).UserID, req.Amount,
		domain.PayoutMethod(req.PayoutMethod), req.AccountDetails)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

func (h *PayoutHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	reqs, total, err := h.payoutSvc.ListVendorRequests(r.Context(),
		ClaimsFrom(r.Context()).UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, pagedData{Items: reqs, Total: total})
}

type earningsResponse struct {
	Available float64 `json:"available"`
	Total     float64 `json:"total"`
}

func (h *PayoutHandler) Earnings(w http.ResponseWriter, r *http.Request) {
	vendorID := ClaimsFrom(r.Context()).UserID

	available, err := h.payoutSvc.AvailableEarnings(r.Context(), vendorID)
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := h.payoutSvc.TotalEarnings(r.Context(), vendorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, earningsResponse{Available: available, Total: total})
}

func (h *PayoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid payout request id")
		return
	}

	req, err := h.payoutSvc.GetRequest(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	claims := ClaimsFrom(r.Context())
	if claims.Role != string(domain.UserRoleAdmin) && req.VendorID != claims.UserID {
		writeMessage(w, http.StatusForbidden, "not your payout request")
		return
	}
	writeData(w, http.StatusOK, req)
}

func (h *PayoutHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	status := domain.PayoutStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.PayoutStatusPending
	}
	if !domain.ValidPayoutStatus(status) {
		writeMessage(w, http.StatusBadRequest, "unknown payout status")
		return
	}

	reqs, err := h.payoutSvc.ListByStatus(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, reqs)
}

type payoutActionRequest struct {
	Action string `json:"action"` // approve | reject | process
	Reason string `json:"reason,omitempty"`
}

// Action is the operator endpoint driving the payout state machine.
func (h *PayoutHandler) Action(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid payout request id")
		return
	}

	var req payoutActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	operatorID := ClaimsFrom(r.Context()).UserID

	var result *service.PayoutActionResult
	var err error
	switch req.Action {
	case "approve":
		result, err = h.processor.Approve(r.Context(), operatorID, id)
	case "reject":
		result, err = h.processor.Reject(r.Context(), operatorID, id, req.Reason)
	case "process":
		result, err = h.processor.Process(r.Context(), operatorID, id)
	default:
		writeMessage(w, http.StatusBadRequest, "action must be approve, reject or process")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}
