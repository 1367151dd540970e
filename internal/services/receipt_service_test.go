package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
)

func TestReceiptService_GenerateSlip(t *testing.T) {
	t.Run("issues slip for pending ticket", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		redisClient, redisMock := redismock.NewClientMock()
		service := NewReceiptService(db, redisClient)

		mock.ExpectQuery(`SELECT price, paid_amount FROM tickets WHERE id = \$1`).
			WithArgs("ticket-1").
			WillReturnRows(sqlmock.NewRows([]string{"price", "paid_amount"}).
				AddRow(1000.0, 400.0))

		// The slip code embeds a random nonce; match the key by pattern.
		redisMock.Regexp().ExpectSet(`receipt:.+`, `.+`, 15*time.Minute).SetVal("OK")

		code, qrImage, err := service.GenerateSlip(context.Background(), "ticket-1")

		assert.NoError(t, err)
		assert.NotEmpty(t, code)
		assert.NotEmpty(t, qrImage)

		// The code is the base64 slip payload itself.
		payload, err := base64.URLEncoding.DecodeString(code)
		assert.NoError(t, err)
		var slip ReceiptSlip
		assert.NoError(t, json.Unmarshal(payload, &slip))
		assert.Equal(t, "ticket-1", slip.TicketID)
		assert.Equal(t, 600.0, slip.Remaining)
		assert.Equal(t, "UZS", slip.Currency)
		assert.NotEmpty(t, slip.Nonce)

		_, err = base64.StdEncoding.DecodeString(qrImage)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("settled ticket is rejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		redisClient, _ := redismock.NewClientMock()
		service := NewReceiptService(db, redisClient)

		mock.ExpectQuery(`SELECT price, paid_amount FROM tickets WHERE id = \$1`).
			WithArgs("ticket-1").
			WillReturnRows(sqlmock.NewRows([]string{"price", "paid_amount"}).
				AddRow(1000.0, 1000.0))

		_, _, err = service.GenerateSlip(context.Background(), "ticket-1")

		assert.ErrorIs(t, err, ErrTicketAlreadyPaid)
	})

	t.Run("unknown ticket is rejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		redisClient, _ := redismock.NewClientMock()
		service := NewReceiptService(db, redisClient)

		mock.ExpectQuery(`SELECT price, paid_amount FROM tickets WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, _, err = service.GenerateSlip(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrTicketNotFound)
	})

	t.Run("requires redis", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		service := NewReceiptService(db, nil)

		_, _, err = service.GenerateSlip(context.Background(), "ticket-1")

		assert.Error(t, err)
	})
}

func TestReceiptService_RedeemSlip(t *testing.T) {
	t.Run("resolves and burns a valid slip", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		redisClient, redisMock := redismock.NewClientMock()
		service := NewReceiptService(db, redisClient)

		slip := ReceiptSlip{TicketID: "ticket-1", Remaining: 600, Currency: "UZS", Nonce: "n1", IssuedAt: time.Now().Unix()}
		payload, _ := json.Marshal(slip)

		redisMock.ExpectGet("receipt:CODE").SetVal(string(payload))
		redisMock.ExpectDel("receipt:CODE").SetVal(1)

		result, err := service.RedeemSlip(context.Background(), "CODE")

		assert.NoError(t, err)
		assert.Equal(t, "ticket-1", result.TicketID)
		assert.Equal(t, 600.0, result.Remaining)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("expired or unknown slip is rejected", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		redisClient, redisMock := redismock.NewClientMock()
		service := NewReceiptService(db, redisClient)

		redisMock.ExpectGet("receipt:GONE").RedisNil()

		_, err = service.RedeemSlip(context.Background(), "GONE")

		assert.Error(t, err)
	})
}
