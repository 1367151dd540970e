package services

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sayohat/backend/internal/models"
)

// PrepaidService records client credits taken before any ticket is issued.
type PrepaidService struct {
	db        *sql.DB
	validator *ValidationHelper
}

func NewPrepaidService(db *sql.DB) *PrepaidService {
	return &PrepaidService{
		db:        db,
		validator: NewValidationHelper(),
	}
}

type createPrepaidRequest struct {
	ClientName    string     `json:"client_name" validate:"required,min=2"`
	Amount        float64    `json:"amount" validate:"required,gt=0"`
	PaymentMethod string     `json:"payment_method"`
	PaymentDate   *time.Time `json:"payment_date"`
	Notes         string     `json:"notes"`
}

// CreatePrepaidClient records a prepaid credit
// @Summary Create prepaid client record
// @Tags prepaid
// @Accept json
// @Produce json
// @Param request body createPrepaidRequest true "Prepaid client data"
// @Success 201 {object} models.PrepaidClient
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /prepaid-clients [post]
func (s *PrepaidService) CreatePrepaidClient(w http.ResponseWriter, r *http.Request) {
	agentID, _ := r.Context().Value("agentID").(string)
	if agentID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req createPrepaidRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	client := models.PrepaidClient{
		ID:          uuid.NewString(),
		AgentID:     agentID,
		ClientName:  req.ClientName,
		Amount:      req.Amount,
		Method:      models.ParsePaymentMethod(req.PaymentMethod),
		PaymentDate: paymentDate,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
	}

	err := s.db.QueryRowContext(r.Context(),
		`SELECT name FROM agents WHERE id = $1`, agentID).Scan(&client.AgentName)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("[PREPAID] Agent lookup failed for %s: %v", agentID, err)
	}

	_, err = s.db.ExecContext(r.Context(), `
		INSERT INTO prepaid_clients
		(id, agent_id, agent_name, client_name, amount, payment_method, payment_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, client.ID, client.AgentID, client.AgentName, client.ClientName,
		client.Amount, string(client.Method), client.PaymentDate, client.Notes, client.CreatedAt)
	if err != nil {
		log.Printf("[PREPAID] Failed to create prepaid client: %v", err)
		SendErrorResponse(w, "Failed to create prepaid client", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(client)
}

// ListPrepaidClients lists prepaid credits newest-first with a running total
// @Summary List prepaid clients
// @Tags prepaid
// @Produce json
// @Success 200 {object} object{clients=[]models.PrepaidClient,total=number}
// @Failure 500 {object} ErrorResponse
// @Router /prepaid-clients [get]
func (s *PrepaidService) ListPrepaidClients(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT id, COALESCE(agent_id::text, ''), agent_name, client_name, amount,
		       payment_method, payment_date, notes, created_at
		FROM prepaid_clients
		ORDER BY created_at DESC
	`)
	if err != nil {
		log.Printf("[PREPAID] Failed to list prepaid clients: %v", err)
		SendErrorResponse(w, "Failed to fetch prepaid clients", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	clients := []models.PrepaidClient{}
	total := 0.0
	for rows.Next() {
		var c models.PrepaidClient
		var method string
		if err := rows.Scan(&c.ID, &c.AgentID, &c.AgentName, &c.ClientName, &c.Amount,
			&method, &c.PaymentDate, &c.Notes, &c.CreatedAt); err != nil {
			SendErrorResponse(w, "Failed to fetch prepaid clients", http.StatusInternalServerError, nil)
			return
		}
		c.Method = models.ParsePaymentMethod(method)
		clients = append(clients, c)
		total += c.Amount
	}
	if err := rows.Err(); err != nil {
		SendErrorResponse(w, "Failed to fetch prepaid clients", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"clients": clients,
		"total":   total,
	})
}
