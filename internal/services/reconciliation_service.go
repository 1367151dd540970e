package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sayohat/backend/internal/config"
	"github.com/sayohat/backend/internal/models"
)

var (
	// ErrNoEntries rejects an empty submission before any write happens.
	ErrNoEntries = errors.New("no payment amount entered")
	// ErrTicketNotFound means the ticket id did not resolve; the whole
	// operation fails and nothing is written.
	ErrTicketNotFound = errors.New("ticket not found")

	errVersionConflict = errors.New("ticket version conflict")
)

// ReconcileResult reports the ticket's payment state after a successful
// submission.
type ReconcileResult struct {
	Status     models.PaymentStatus `json:"payment_status"`
	PaidAmount float64              `json:"paid_amount"`
	Remaining  float64              `json:"remaining"`
}

// ReconciliationService is the single place where payment entries are durably
// applied to a ticket: it appends ledger rows and moves paid_amount/status in
// one database transaction guarded by an optimistic version check.
//
// The operation is deliberately not idempotent: submitting the same entry
// list twice records the money twice. Callers debounce double clicks.
type ReconciliationService struct {
	db        *sql.DB
	feed      *ChangeFeed
	notifier  Notifier
	validator *ValidationHelper
	config    *config.PaymentConfig
}

func NewReconciliationService(db *sql.DB, feed *ChangeFeed, notifier Notifier) *ReconciliationService {
	return &ReconciliationService{
		db:        db,
		feed:      feed,
		notifier:  notifier,
		validator: NewValidationHelper(),
		config:    config.LoadPaymentConfig(),
	}
}

// SubmitPayment applies a non-empty batch of entries to the ticket. On a
// version conflict (a concurrent submission for the same ticket won the
// update) the whole read-insert-update sequence is retried against fresh
// state, so no payment's contribution to the running total is ever lost.
func (s *ReconciliationService) SubmitPayment(ctx context.Context, ticketID string, entries []PaymentEntry) (*ReconcileResult, error) {
	if ticketID == "" {
		return nil, errors.New("ticket id is required")
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	for i, e := range entries {
		if e.Amount <= 0 {
			return nil, fmt.Errorf("payment amount must be positive, got %v", e.Amount)
		}
		entries[i].Method = models.ParsePaymentMethod(string(e.Method))
	}

	var result *ReconcileResult
	for attempt := 1; ; attempt++ {
		res, err := s.submitOnce(ctx, ticketID, entries)
		if err == nil {
			result = res
			break
		}
		if errors.Is(err, errVersionConflict) && attempt < s.config.SubmitRetries {
			log.Printf("[RECONCILE] Version conflict on ticket %s, retrying (attempt %d)", ticketID, attempt)
			continue
		}
		if !errors.Is(err, ErrTicketNotFound) {
			s.notifier.Error("Ошибка", fmt.Sprintf("Не удалось обновить информацию о платеже: %v", err))
		}
		return nil, err
	}

	s.feed.Publish(ctx, TicketEvent{TicketID: ticketID, Action: "payment"})

	if result.Status == models.StatusPaid {
		s.notifier.Success("Платеж завершен", "Билет отмечен как полностью оплаченный")
	} else {
		s.notifier.Success("Частичная оплата сохранена",
			fmt.Sprintf("Остаток к оплате: %.0f %s", result.Remaining, s.config.Currency))
	}
	return result, nil
}

func (s *ReconciliationService) submitOnce(ctx context.Context, ticketID string, entries []PaymentEntry) (*ReconcileResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var price, paid float64
	var version int
	err = tx.QueryRowContext(ctx, `
		SELECT price, paid_amount, version FROM tickets WHERE id = $1
	`, ticketID).Scan(&price, &paid, &version)
	if err == sql.ErrNoRows {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	batchTotal := 0.0
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ticket_payments (id, ticket_id, amount, payment_method, payment_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.NewString(), ticketID, e.Amount, string(e.Method), now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to record payment: %w", err)
		}
		batchTotal += e.Amount
	}

	newPaid := paid + batchTotal
	status := DerivePaymentStatus(price, newPaid)

	var paymentDate any
	if status == models.StatusPaid {
		paymentDate = now
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE tickets
		SET paid_amount = $1, payment_status = $2, payment_date = $3, version = version + 1
		WHERE id = $4 AND version = $5
	`, newPaid, string(status), paymentDate, ticketID, version)
	if err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, errVersionConflict
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &ReconcileResult{
		Status:     status,
		PaidAmount: newPaid,
		Remaining:  price - newPaid,
	}, nil
}

// ListPayments returns the immutable ledger rows recorded against a ticket.
func (s *ReconciliationService) ListPayments(ctx context.Context, ticketID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ticket_id, amount, payment_method, payment_date, created_at
		FROM ticket_payments
		WHERE ticket_id = $1
		ORDER BY created_at
	`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		var method string
		if err := rows.Scan(&p.ID, &p.TicketID, &p.Amount, &method, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Method = models.ParsePaymentMethod(method)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

type paymentEntryRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method"`
}

// SubmitTicketPayment records a batch of payments against a ticket
// @Summary Submit ticket payments
// @Description Append one or more payment entries to a ticket's ledger and recompute its payment status
// @Tags payments
// @Accept json
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Param request body object{payments=[]paymentEntryRequest} true "Payment entries"
// @Success 200 {object} ReconcileResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tickets/{ticketId}/payments [post]
func (s *ReconciliationService) SubmitTicketPayment(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	var req struct {
		Payments []paymentEntryRequest `json:"payments" validate:"required,min=1,dive"`
	}
	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	entries := make([]PaymentEntry, 0, len(req.Payments))
	for _, p := range req.Payments {
		entries = append(entries, PaymentEntry{
			Amount: p.Amount,
			Method: models.ParsePaymentMethod(p.PaymentMethod),
		})
	}

	result, err := s.SubmitPayment(r.Context(), ticketID, entries)
	if err != nil {
		switch {
		case errors.Is(err, ErrTicketNotFound):
			SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
		case errors.Is(err, ErrNoEntries):
			SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		default:
			SendErrorResponse(w, err.Error(), http.StatusInternalServerError, nil)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ListTicketPayments lists a ticket's ledger rows
// @Summary List ticket payments
// @Tags payments
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Success 200 {object} object{payments=[]models.Payment,total=number}
// @Failure 500 {object} ErrorResponse
// @Router /tickets/{ticketId}/payments [get]
func (s *ReconciliationService) ListTicketPayments(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	payments, err := s.ListPayments(r.Context(), ticketID)
	if err != nil {
		SendErrorResponse(w, "Failed to fetch payments", http.StatusInternalServerError, nil)
		return
	}

	total := 0.0
	for _, p := range payments {
		total += p.Amount
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"payments": payments,
		"total":    total,
	})
}

// PreviewPayment computes the live breakdown for the multi-instrument form
// @Summary Preview a payment breakdown
// @Description Normalize the four instrument fields into an entry list and recompute existing/current/remaining totals. Called on every field change; performs no writes.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body object{price=number,existing=[]paymentEntryRequest,fields=PaymentFields} true "Preview request"
// @Success 200 {object} PaymentBreakdown
// @Failure 400 {object} ErrorResponse
// @Router /payments/preview [post]
func (s *ReconciliationService) PreviewPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price    float64               `json:"price" validate:"gte=0"`
		Existing []paymentEntryRequest `json:"existing" validate:"dive"`
		Fields   PaymentFields         `json:"fields"`
	}
	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	existing := make([]models.Payment, 0, len(req.Existing))
	for _, p := range req.Existing {
		existing = append(existing, models.Payment{
			Amount: p.Amount,
			Method: models.ParsePaymentMethod(p.PaymentMethod),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BuildBreakdown(req.Price, existing, req.Fields))
}
