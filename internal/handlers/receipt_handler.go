package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sayohat/backend/internal/services"
)

type ReceiptHandler struct {
	service   *services.ReceiptService
	validator *services.ValidationHelper
}

func NewReceiptHandler(service *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// GenerateReceipt issues a QR payment slip for a pending ticket
// @Summary Generate receipt QR
// @Description Issue a one-shot QR payment slip for the ticket's remaining balance
// @Tags receipts
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Success 200 {object} object{code=string,qrImage=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /tickets/{ticketId}/receipt [post]
func (h *ReceiptHandler) GenerateReceipt(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	code, qrImage, err := h.service.GenerateSlip(r.Context(), ticketID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			services.SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
		case errors.Is(err, services.ErrTicketAlreadyPaid):
			services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		default:
			services.SendErrorResponse(w, err.Error(), http.StatusInternalServerError, nil)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"code":    code,
		"qrImage": qrImage,
	})
}

// RedeemReceipt resolves a scanned slip code
// @Summary Redeem receipt QR
// @Description Resolve a scanned slip code to its ticket and remaining balance; the slip is single-use
// @Tags receipts
// @Accept json
// @Produce json
// @Param request body object{code=string} true "Slip code"
// @Success 200 {object} services.ReceiptSlip
// @Failure 400 {object} services.ErrorResponse
// @Router /receipts/redeem [post]
func (h *ReceiptHandler) RedeemReceipt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code" validate:"required"`
	}
	if err := services.DecodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	slip, err := h.service.RedeemSlip(r.Context(), req.Code)
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slip)
}
