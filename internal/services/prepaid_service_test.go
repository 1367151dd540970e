package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPrepaidService_CreatePrepaidClient(t *testing.T) {
	t.Run("records credit with agent attribution", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		service := NewPrepaidService(db)

		mock.ExpectQuery(`SELECT name FROM agents WHERE id = \$1`).
			WithArgs("agent-1").
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Aziza"))
		mock.ExpectExec(`INSERT INTO prepaid_clients`).
			WithArgs(sqlmock.AnyArg(), "agent-1", "Aziza", "Karimov Client", 500000.0,
				"cash", sqlmock.AnyArg(), "deposit for summer tour", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		body := `{"client_name":"Karimov Client","amount":500000,"payment_method":"cash","notes":"deposit for summer tour"}`
		req := httptest.NewRequest("POST", "/prepaid-clients", bytes.NewBufferString(body))
		req = req.WithContext(context.WithValue(req.Context(), "agentID", "agent-1"))
		w := httptest.NewRecorder()
		service.CreatePrepaidClient(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Karimov Client", response["client_name"])
		assert.Equal(t, 500000.0, response["amount"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects request without agent context", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		service := NewPrepaidService(db)

		body := `{"client_name":"Karimov Client","amount":500000}`
		req := httptest.NewRequest("POST", "/prepaid-clients", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		service.CreatePrepaidClient(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		service := NewPrepaidService(db)

		body := `{"client_name":"Karimov Client","amount":0}`
		req := httptest.NewRequest("POST", "/prepaid-clients", bytes.NewBufferString(body))
		req = req.WithContext(context.WithValue(req.Context(), "agentID", "agent-1"))
		w := httptest.NewRecorder()
		service.CreatePrepaidClient(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPrepaidService_ListPrepaidClients(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	service := NewPrepaidService(db)

	mock.ExpectQuery(`SELECT (.+) FROM prepaid_clients ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "agent_id", "agent_name", "client_name", "amount",
				"payment_method", "payment_date", "notes", "created_at"}).
			AddRow("c1", "agent-1", "Aziza", "Client A", 500000.0, "cash", time.Now(), "", time.Now()).
			AddRow("c2", "agent-1", "Aziza", "Client B", 300000.0, "terminal", time.Now(), "", time.Now()))

	req := httptest.NewRequest("GET", "/prepaid-clients", nil)
	w := httptest.NewRecorder()
	service.ListPrepaidClients(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Clients []map[string]any `json:"clients"`
		Total   float64          `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Clients, 2)
	assert.Equal(t, 800000.0, response.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
