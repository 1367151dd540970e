package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sayohat/backend/internal/models"
)

// ExpenseService records office outgoings. Expenses and consumptions share a
// shape but live in separate tables; the back office reports them separately.
type ExpenseService struct {
	db        *sql.DB
	validator *ValidationHelper
}

func NewExpenseService(db *sql.DB) *ExpenseService {
	return &ExpenseService{
		db:        db,
		validator: NewValidationHelper(),
	}
}

type createOutgoingRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method"`
	Commentary    string  `json:"commentary" validate:"max=500"`
}

// CreateExpense records an expense
// @Summary Create expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body createOutgoingRequest true "Expense data"
// @Success 201 {object} models.Expense
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses [post]
func (s *ExpenseService) CreateExpense(w http.ResponseWriter, r *http.Request) {
	s.createOutgoing(w, r, "expenses")
}

// CreateConsumption records a consumption
// @Summary Create consumption
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body createOutgoingRequest true "Consumption data"
// @Success 201 {object} models.Consumption
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /consumptions [post]
func (s *ExpenseService) CreateConsumption(w http.ResponseWriter, r *http.Request) {
	s.createOutgoing(w, r, "consumptions")
}

// ListExpenses lists expenses newest-first with a running total
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Success 200 {object} object{records=[]models.Expense,total=number}
// @Failure 500 {object} ErrorResponse
// @Router /expenses [get]
func (s *ExpenseService) ListExpenses(w http.ResponseWriter, r *http.Request) {
	s.listOutgoings(w, r, "expenses")
}

// ListConsumptions lists consumptions newest-first with a running total
// @Summary List consumptions
// @Tags expenses
// @Produce json
// @Success 200 {object} object{records=[]models.Consumption,total=number}
// @Failure 500 {object} ErrorResponse
// @Router /consumptions [get]
func (s *ExpenseService) ListConsumptions(w http.ResponseWriter, r *http.Request) {
	s.listOutgoings(w, r, "consumptions")
}

func (s *ExpenseService) createOutgoing(w http.ResponseWriter, r *http.Request, table string) {
	agentID, _ := r.Context().Value("agentID").(string)
	if agentID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req createOutgoingRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	record := models.Expense{
		ID:         uuid.NewString(),
		AgentID:    agentID,
		Amount:     req.Amount,
		Method:     models.ParsePaymentMethod(req.PaymentMethod),
		Commentary: req.Commentary,
		CreatedAt:  time.Now(),
	}

	_, err := s.db.ExecContext(r.Context(), `
		INSERT INTO `+table+` (id, agent_id, amount, payment_method, commentary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, record.ID, record.AgentID, record.Amount, string(record.Method), record.Commentary, record.CreatedAt)
	if err != nil {
		log.Printf("[EXPENSE] Failed to insert into %s: %v", table, err)
		SendErrorResponse(w, "Failed to save record", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

func (s *ExpenseService) listOutgoings(w http.ResponseWriter, r *http.Request, table string) {
	records, total, err := s.fetchOutgoings(r.Context(), table)
	if err != nil {
		log.Printf("[EXPENSE] Failed to list %s: %v", table, err)
		SendErrorResponse(w, "Failed to fetch records", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"records": records,
		"total":   total,
	})
}

func (s *ExpenseService) fetchOutgoings(ctx context.Context, table string) ([]models.Expense, float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(agent_id::text, ''), amount, payment_method, commentary, created_at
		FROM `+table+`
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := []models.Expense{}
	total := 0.0
	for rows.Next() {
		var rec models.Expense
		var method string
		if err := rows.Scan(&rec.ID, &rec.AgentID, &rec.Amount, &method, &rec.Commentary, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		rec.Method = models.ParsePaymentMethod(method)
		records = append(records, rec)
		total += rec.Amount
	}
	return records, total, rows.Err()
}
