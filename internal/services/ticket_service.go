package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sayohat/backend/internal/config"
	"github.com/sayohat/backend/internal/models"
)

// TicketService owns ticket creation and the read side: listing tickets with
// their ledger rows attached, served from a Redis cache that the change feed
// invalidates.
type TicketService struct {
	db        *sql.DB
	redis     *redis.Client
	feed      *ChangeFeed
	recon     *ReconciliationService
	validator *ValidationHelper
	config    *config.PaymentConfig
}

func NewTicketService(db *sql.DB, redisClient *redis.Client, feed *ChangeFeed, recon *ReconciliationService) *TicketService {
	return &TicketService{
		db:        db,
		redis:     redisClient,
		feed:      feed,
		recon:     recon,
		validator: NewValidationHelper(),
		config:    config.LoadPaymentConfig(),
	}
}

type createTicketRequest struct {
	PassengerName      string                `json:"passenger_name" validate:"required,min=2"`
	OriginCode         string                `json:"origin_code"`
	OriginCity         string                `json:"origin_city"`
	OriginCountry      string                `json:"origin_country"`
	DestinationCode    string                `json:"destination_code"`
	DestinationCity    string                `json:"destination_city"`
	DestinationCountry string                `json:"destination_country"`
	AirlineCode        string                `json:"airline_code"`
	AirlineName        string                `json:"airline_name"`
	TravelDate         *time.Time            `json:"travel_date"`
	Price              float64               `json:"price" validate:"gte=0"`
	BasePrice          float64               `json:"base_price" validate:"gte=0"`
	Fees               float64               `json:"fees" validate:"gte=0"`
	ServiceType        string                `json:"service_type"`
	Supplier           string                `json:"supplier"`
	OrderNumber        string                `json:"order_number"`
	ContactInfo        string                `json:"contact_info"`
	Comments           string                `json:"comments"`
	Payments           []paymentEntryRequest `json:"payments" validate:"dive"`
}

// CreateTicket creates a sellable item
// @Summary Create a ticket
// @Description Record a new ticket/tour/insurance sale. Price is fixed here and never changes afterwards; any payments included in the request go through the reconciliation engine.
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body createTicketRequest true "Ticket data"
// @Success 201 {object} models.Ticket
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tickets [post]
func (s *TicketService) CreateTicket(w http.ResponseWriter, r *http.Request) {
	agentID, _ := r.Context().Value("agentID").(string)

	var req createTicketRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	serviceType := req.ServiceType
	if serviceType == "" {
		serviceType = "flight"
	}

	agentName := s.lookupAgentName(r.Context(), agentID)

	ticketID := uuid.NewString()
	now := time.Now()
	_, err := s.db.ExecContext(r.Context(), `
		INSERT INTO tickets
		(id, passenger_name, origin_code, origin_city, origin_country,
		 destination_code, destination_city, destination_country,
		 airline_code, airline_name, travel_date, price, base_price, fees,
		 paid_amount, payment_status, service_type, supplier,
		 agent_id, agent_name, order_number, contact_info, comments, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        0, 'pending', $15, $16, $17, $18, $19, $20, $21, 0, $22)
	`, ticketID, req.PassengerName, req.OriginCode, req.OriginCity, req.OriginCountry,
		req.DestinationCode, req.DestinationCity, req.DestinationCountry,
		req.AirlineCode, req.AirlineName, req.TravelDate, req.Price, req.BasePrice, req.Fees,
		serviceType, req.Supplier, nullableID(agentID), agentName,
		req.OrderNumber, req.ContactInfo, req.Comments, now)
	if err != nil {
		log.Printf("[TICKET] Failed to create ticket: %v", err)
		SendErrorResponse(w, "Failed to create ticket", http.StatusInternalServerError, nil)
		return
	}

	s.feed.Publish(r.Context(), TicketEvent{TicketID: ticketID, Action: "created"})

	// Single-shot forms (train, tour, insurance) send the money together
	// with the sale; run it through the same reconciliation path as the
	// pending-payment dialog.
	if len(req.Payments) > 0 {
		entries := make([]PaymentEntry, 0, len(req.Payments))
		for _, p := range req.Payments {
			entries = append(entries, PaymentEntry{
				Amount: p.Amount,
				Method: models.ParsePaymentMethod(p.PaymentMethod),
			})
		}
		if _, err := s.recon.SubmitPayment(r.Context(), ticketID, entries); err != nil {
			log.Printf("[TICKET] Ticket %s created but initial payment failed: %v", ticketID, err)
			SendErrorResponse(w, "Ticket created but payment failed: "+err.Error(), http.StatusInternalServerError, nil)
			return
		}
	}

	ticket, err := s.fetchTicket(r.Context(), ticketID)
	if err != nil {
		SendErrorResponse(w, "Failed to fetch created ticket", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ticket)
}

// GetTicket retrieves one ticket with its ledger rows
// @Summary Get ticket by ID
// @Tags tickets
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Success 200 {object} models.Ticket
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tickets/{ticketId} [get]
func (s *TicketService) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	ticket, err := s.fetchTicket(r.Context(), ticketID)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			SendErrorResponse(w, "Ticket not found", http.StatusNotFound, nil)
		} else {
			SendErrorResponse(w, "Failed to fetch ticket", http.StatusInternalServerError, nil)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ticket)
}

// ListTickets lists tickets newest-first with payments attached
// @Summary List tickets
// @Description List tickets with their payment ledger rows, newest first. Served from cache when the change feed has not invalidated it.
// @Tags tickets
// @Produce json
// @Param status query string false "Filter by payment status (pending or paid)"
// @Success 200 {object} object{tickets=[]models.Ticket,count=int}
// @Failure 500 {object} ErrorResponse
// @Router /tickets [get]
func (s *TicketService) ListTickets(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	// Cache only the unfiltered list; filtered views go straight to the DB.
	if status == "" && s.redis != nil {
		if cached, err := s.redis.Get(r.Context(), ticketCacheKey).Bytes(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write(cached)
			return
		}
	}

	tickets, err := s.fetchTickets(r.Context(), status)
	if err != nil {
		log.Printf("[TICKET] Failed to list tickets: %v", err)
		SendErrorResponse(w, "Failed to fetch tickets", http.StatusInternalServerError, nil)
		return
	}

	body, err := json.Marshal(map[string]any{
		"tickets": tickets,
		"count":   len(tickets),
	})
	if err != nil {
		SendErrorResponse(w, "Failed to encode tickets", http.StatusInternalServerError, nil)
		return
	}

	if status == "" && s.redis != nil {
		s.redis.Set(r.Context(), ticketCacheKey, body, s.config.TicketCacheTTL)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

const ticketColumns = `id, passenger_name, origin_code, origin_city, origin_country,
	       destination_code, destination_city, destination_country,
	       airline_code, airline_name, travel_date, price, base_price, fees,
	       paid_amount, payment_status, payment_date, service_type, supplier,
	       COALESCE(agent_id::text, ''), agent_name, order_number, contact_info, comments, version, created_at`

func scanTicket(row interface{ Scan(...any) error }) (*models.Ticket, error) {
	var t models.Ticket
	var travelDate, paymentDate sql.NullTime
	var status string
	err := row.Scan(
		&t.ID, &t.PassengerName, &t.OriginCode, &t.OriginCity, &t.OriginCountry,
		&t.DestinationCode, &t.DestinationCity, &t.DestinationCountry,
		&t.AirlineCode, &t.AirlineName, &travelDate, &t.Price, &t.BasePrice, &t.Fees,
		&t.PaidAmount, &status, &paymentDate, &t.ServiceType, &t.Supplier,
		&t.AgentID, &t.AgentName, &t.OrderNumber, &t.ContactInfo, &t.Comments, &t.Version, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.PaymentStatus = models.PaymentStatus(status)
	if travelDate.Valid {
		t.TravelDate = &travelDate.Time
	}
	if paymentDate.Valid {
		t.PaymentDate = &paymentDate.Time
	}
	return &t, nil
}

func (s *TicketService) fetchTicket(ctx context.Context, ticketID string) (*models.Ticket, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, ticketID)
	ticket, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}

	payments, err := s.recon.ListPayments(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.Payments = payments
	return ticket, nil
}

func (s *TicketService) fetchTickets(ctx context.Context, status string) ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets`
	args := []any{}
	if status != "" {
		query += ` WHERE payment_status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT ` + fmtInt(s.config.ListLimit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []models.Ticket{}
	ids := []string{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		t.Payments = []models.Payment{}
		tickets = append(tickets, *t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return tickets, nil
	}

	payRows, err := s.db.QueryContext(ctx, `
		SELECT id, ticket_id, amount, payment_method, payment_date, created_at
		FROM ticket_payments
		WHERE ticket_id = ANY($1)
		ORDER BY created_at
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer payRows.Close()

	byTicket := map[string][]models.Payment{}
	for payRows.Next() {
		var p models.Payment
		var method string
		if err := payRows.Scan(&p.ID, &p.TicketID, &p.Amount, &method, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Method = models.ParsePaymentMethod(method)
		byTicket[p.TicketID] = append(byTicket[p.TicketID], p)
	}
	if err := payRows.Err(); err != nil {
		return nil, err
	}

	for i := range tickets {
		if payments, ok := byTicket[tickets[i].ID]; ok {
			tickets[i].Payments = payments
		}
	}
	return tickets, nil
}

func (s *TicketService) lookupAgentName(ctx context.Context, agentID string) string {
	if agentID == "" {
		return ""
	}
	var name string
	if err := s.db.QueryRowContext(ctx, `SELECT name FROM agents WHERE id = $1`, agentID).Scan(&name); err != nil {
		return ""
	}
	return name
}

// nullableID maps an absent id to NULL so the UUID column does not reject an
// empty string.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func fmtInt(n int) string {
	if n <= 0 {
		n = 200
	}
	return strconv.Itoa(n)
}
