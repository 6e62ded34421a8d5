package http

import (
	"encoding/json"
	"net/http"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/service"

	"github.com/gorilla/mux"
)

type TransactionHandler struct {
	txSvc service.TransactionService
}

func NewTransactionHandler(txSvc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txSvc: txSvc}
}

type checkoutRequest struct {
	SellerID       int32   `json:"seller_id"`
	BookID         int32   `json:"book_id"`
	Type           string  `json:"transaction_type"`
	UnitPrice      float64 `json:"unit_price"`
	Quantity       int32   `json:"quantity"`
	RentalDuration *int32  `json:"rental_duration,omitempty"`
	RentalUnit     string  `json:"rental_unit,omitempty"`
}

func (h *TransactionHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.txSvc.Checkout(r.Context(), &service.CheckoutInput{
		BuyerID:        ClaimsFrom(r.Context()).UserID,
		SellerID:       req.SellerID,
		BookID:         req.BookID,
		Type:           domain.TransactionType(req.Type),
		UnitPrice:      req.UnitPrice,
		Quantity:       req.Quantity,
		RentalDuration: req.RentalDuration,
		RentalUnit:     req.RentalUnit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	claims := ClaimsFrom(r.Context())
	// Detail views are gated to the two parties; admins see everything.
	if claims.Role != string(domain.UserRoleAdmin) {
		allowed, err := h.txSvc.CanUserView(r.Context(), id, claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		if !allowed {
			writeMessage(w, http.StatusForbidden, "you are not a party to this transaction")
			return
		}
	}

	tx, err := h.txSvc.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, tx)
}

// GetByCode resolves a transaction by its receipt code, with the same
// party gating as Get.
func (h *TransactionHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	tx, err := h.txSvc.GetTransactionByCode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}

	claims := ClaimsFrom(r.Context())
	if claims.Role != string(domain.UserRoleAdmin) && tx.BuyerID != claims.UserID && tx.SellerID != claims.UserID {
		writeMessage(w, http.StatusForbidden, "you are not a party to this transaction")
		return
	}
	writeData(w, http.StatusOK, tx)
}

func (h *TransactionHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	txs, total, err := h.txSvc.ListPurchases(r.Context(), ClaimsFrom(r.Context()).UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, pagedData{Items: txs, Total: total})
}

func (h *TransactionHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	txs, total, err := h.txSvc.ListSales(r.Context(), ClaimsFrom(r.Context()).UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, pagedData{Items: txs, Total: total})
}

type paymentStatusRequest struct {
	Status    string `json:"status"`
	Reference string `json:"reference,omitempty"`
}

func (h *TransactionHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req paymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.txSvc.UpdatePaymentStatus(r.Context(), id, domain.PaymentStatus(req.Status), req.Reference)
	if err != nil {
		writeError(w, err)
		return
	}
	if !updated {
		writeMessage(w, http.StatusBadRequest, "unknown payment status or transaction")
		return
	}
	writeMessage(w, http.StatusOK, "payment status updated")
}

type deliveryStatusRequest struct {
	Status string `json:"status"`
}

func (h *TransactionHandler) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req deliveryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.txSvc.UpdateDeliveryStatus(r.Context(), id, domain.DeliveryStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	if !updated {
		writeMessage(w, http.StatusBadRequest, "unknown delivery status or transaction")
		return
	}
	writeMessage(w, http.StatusOK, "delivery status updated")
}

func (h *TransactionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	cancelled, err := h.txSvc.CancelTransaction(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !cancelled {
		writeMessage(w, http.StatusConflict, "transaction already cancelled or not found")
		return
	}
	writeMessage(w, http.StatusOK, "transaction cancelled")
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	deleted, err := h.txSvc.DeleteTransaction(r.Context(), ClaimsFrom(r.Context()).UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "transaction not found")
		return
	}
	writeMessage(w, http.StatusOK, "transaction deleted")
}
