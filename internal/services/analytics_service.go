package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
)

// AnalyticsService serves the admin dashboards: aggregated sales figures,
// operator performance, monthly revenue series and per-supplier revenue.
// Everything here is read-side SQL over the tickets table; the ledger stays
// the source of truth for collected money.
type AnalyticsService struct {
	db *sql.DB
}

func NewAnalyticsService(db *sql.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// SalesSummary is the headline dashboard block.
type SalesSummary struct {
	TicketCount    int     `json:"ticket_count"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalCollected float64 `json:"total_collected"`
	Outstanding    float64 `json:"outstanding"`
	PendingCount   int     `json:"pending_count"`
}

// AgentPerformance is one operator's row on the performance page.
type AgentPerformance struct {
	AgentID     string  `json:"agent_id"`
	AgentName   string  `json:"agent_name"`
	TicketCount int     `json:"ticket_count"`
	Revenue     float64 `json:"revenue"`
	Collected   float64 `json:"collected"`
}

// MonthlyRevenue is one month's bar on the sales chart.
type MonthlyRevenue struct {
	Month       string  `json:"month"`
	TicketCount int     `json:"ticket_count"`
	Revenue     float64 `json:"revenue"`
}

// SupplierRevenue is one supplier's slice on the revenue breakdown.
type SupplierRevenue struct {
	Supplier    string  `json:"supplier"`
	TicketCount int     `json:"ticket_count"`
	Revenue     float64 `json:"revenue"`
}

// GetSummary returns the aggregated sales summary
// @Summary Sales summary
// @Tags analytics
// @Produce json
// @Success 200 {object} SalesSummary
// @Failure 500 {object} ErrorResponse
// @Router /analytics/summary [get]
func (s *AnalyticsService) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.fetchSummary(r.Context())
	if err != nil {
		log.Printf("[ANALYTICS] Summary query failed: %v", err)
		SendErrorResponse(w, "Failed to compute summary", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// GetAgentPerformance returns per-operator sales aggregates
// @Summary Operator performance
// @Tags analytics
// @Produce json
// @Success 200 {object} object{agents=[]AgentPerformance}
// @Failure 500 {object} ErrorResponse
// @Router /analytics/agents [get]
func (s *AnalyticsService) GetAgentPerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT COALESCE(agent_id::text, ''), agent_name, COUNT(*), SUM(price), SUM(paid_amount)
		FROM tickets
		GROUP BY agent_id, agent_name
		ORDER BY SUM(price) DESC
	`)
	if err != nil {
		log.Printf("[ANALYTICS] Agent performance query failed: %v", err)
		SendErrorResponse(w, "Failed to compute agent performance", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	agents := []AgentPerformance{}
	for rows.Next() {
		var a AgentPerformance
		if err := rows.Scan(&a.AgentID, &a.AgentName, &a.TicketCount, &a.Revenue, &a.Collected); err != nil {
			SendErrorResponse(w, "Failed to compute agent performance", http.StatusInternalServerError, nil)
			return
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		SendErrorResponse(w, "Failed to compute agent performance", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"agents": agents})
}

// GetMonthlyRevenue returns the monthly revenue series
// @Summary Monthly revenue
// @Tags analytics
// @Produce json
// @Success 200 {object} object{months=[]MonthlyRevenue}
// @Failure 500 {object} ErrorResponse
// @Router /analytics/monthly [get]
func (s *AnalyticsService) GetMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM'), COUNT(*), SUM(price)
		FROM tickets
		GROUP BY date_trunc('month', created_at)
		ORDER BY date_trunc('month', created_at)
	`)
	if err != nil {
		log.Printf("[ANALYTICS] Monthly revenue query failed: %v", err)
		SendErrorResponse(w, "Failed to compute monthly revenue", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	months := []MonthlyRevenue{}
	for rows.Next() {
		var m MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.TicketCount, &m.Revenue); err != nil {
			SendErrorResponse(w, "Failed to compute monthly revenue", http.StatusInternalServerError, nil)
			return
		}
		months = append(months, m)
	}
	if err := rows.Err(); err != nil {
		SendErrorResponse(w, "Failed to compute monthly revenue", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"months": months})
}

// GetSupplierRevenue returns per-supplier revenue aggregates
// @Summary Supplier revenue
// @Tags analytics
// @Produce json
// @Success 200 {object} object{suppliers=[]SupplierRevenue}
// @Failure 500 {object} ErrorResponse
// @Router /analytics/suppliers [get]
func (s *AnalyticsService) GetSupplierRevenue(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT supplier, COUNT(*), SUM(price)
		FROM tickets
		WHERE supplier <> ''
		GROUP BY supplier
		ORDER BY SUM(price) DESC
	`)
	if err != nil {
		log.Printf("[ANALYTICS] Supplier revenue query failed: %v", err)
		SendErrorResponse(w, "Failed to compute supplier revenue", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	suppliers := []SupplierRevenue{}
	for rows.Next() {
		var sr SupplierRevenue
		if err := rows.Scan(&sr.Supplier, &sr.TicketCount, &sr.Revenue); err != nil {
			SendErrorResponse(w, "Failed to compute supplier revenue", http.StatusInternalServerError, nil)
			return
		}
		suppliers = append(suppliers, sr)
	}
	if err := rows.Err(); err != nil {
		SendErrorResponse(w, "Failed to compute supplier revenue", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"suppliers": suppliers})
}

func (s *AnalyticsService) fetchSummary(ctx context.Context) (*SalesSummary, error) {
	var summary SalesSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(price), 0),
		       COALESCE(SUM(paid_amount), 0),
		       COALESCE(SUM(price - paid_amount), 0),
		       COUNT(*) FILTER (WHERE payment_status = 'pending')
		FROM tickets
	`).Scan(&summary.TicketCount, &summary.TotalRevenue, &summary.TotalCollected,
		&summary.Outstanding, &summary.PendingCount)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
