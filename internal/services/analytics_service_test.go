package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAnalyticsService_GetSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	service := NewAnalyticsService(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"count", "revenue", "collected", "outstanding", "pending"}).
			AddRow(10, 15000000.0, 12000000.0, 3000000.0, 4))

	req := httptest.NewRequest("GET", "/analytics/summary", nil)
	w := httptest.NewRecorder()
	service.GetSummary(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var summary SalesSummary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 10, summary.TicketCount)
	assert.Equal(t, 15000000.0, summary.TotalRevenue)
	assert.Equal(t, 12000000.0, summary.TotalCollected)
	assert.Equal(t, 3000000.0, summary.Outstanding)
	assert.Equal(t, 4, summary.PendingCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsService_GetAgentPerformance(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	service := NewAnalyticsService(db)

	mock.ExpectQuery(`GROUP BY agent_id, agent_name`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"agent_id", "agent_name", "count", "revenue", "collected"}).
			AddRow("agent-1", "Aziza", 6, 9000000.0, 8000000.0).
			AddRow("agent-2", "Bekzod", 4, 6000000.0, 4000000.0))

	req := httptest.NewRequest("GET", "/analytics/agents", nil)
	w := httptest.NewRecorder()
	service.GetAgentPerformance(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Agents []AgentPerformance `json:"agents"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Agents, 2)
	assert.Equal(t, "Aziza", response.Agents[0].AgentName)
	assert.Equal(t, 9000000.0, response.Agents[0].Revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsService_GetMonthlyRevenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	service := NewAnalyticsService(db)

	mock.ExpectQuery(`date_trunc\('month', created_at\)`).
		WillReturnRows(sqlmock.NewRows([]string{"month", "count", "revenue"}).
			AddRow("2026-07", 8, 12000000.0).
			AddRow("2026-08", 2, 3000000.0))

	req := httptest.NewRequest("GET", "/analytics/monthly", nil)
	w := httptest.NewRecorder()
	service.GetMonthlyRevenue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Months []MonthlyRevenue `json:"months"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Months, 2)
	assert.Equal(t, "2026-07", response.Months[0].Month)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsService_GetSupplierRevenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	service := NewAnalyticsService(db)

	mock.ExpectQuery(`GROUP BY supplier`).
		WillReturnRows(sqlmock.NewRows([]string{"supplier", "count", "revenue"}).
			AddRow("Main Supplier", 7, 10000000.0))

	req := httptest.NewRequest("GET", "/analytics/suppliers", nil)
	w := httptest.NewRecorder()
	service.GetSupplierRevenue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Suppliers []SupplierRevenue `json:"suppliers"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Suppliers, 1)
	assert.Equal(t, "Main Supplier", response.Suppliers[0].Supplier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsService_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	service := NewAnalyticsService(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).WillReturnError(assert.AnError)

	req := httptest.NewRequest("GET", "/analytics/summary", nil)
	w := httptest.NewRecorder()
	service.GetSummary(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
