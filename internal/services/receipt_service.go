package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sayohat/backend/internal/config"
	qrcode "github.com/skip2/go-qrcode"
)

// ErrTicketAlreadyPaid rejects a receipt request for a settled ticket.
var ErrTicketAlreadyPaid = errors.New("ticket is already fully paid")

// ReceiptSlip is the payload encoded into a payment QR: the client scans it
// at the cash desk to settle the remaining balance of a pending ticket.
type ReceiptSlip struct {
	TicketID  string  `json:"ticketId"`
	Remaining float64 `json:"remaining"`
	Currency  string  `json:"currency"`
	Nonce     string  `json:"nonce"`
	IssuedAt  int64   `json:"issuedAt"`
}

// ReceiptService issues one-shot QR payment slips for pending tickets. Slips
// live in Redis with a TTL and are deleted on redeem.
type ReceiptService struct {
	db     *sql.DB
	redis  *redis.Client
	config *config.PaymentConfig
}

func NewReceiptService(db *sql.DB, redisClient *redis.Client) *ReceiptService {
	return &ReceiptService{
		db:     db,
		redis:  redisClient,
		config: config.LoadPaymentConfig(),
	}
}

// GenerateSlip builds a slip for the ticket's remaining balance and returns
// the slip code together with a base64 PNG of its QR.
func (s *ReceiptService) GenerateSlip(ctx context.Context, ticketID string) (string, string, error) {
	if s.redis == nil {
		return "", "", errors.New("receipt slips require Redis")
	}

	var price, paid float64
	err := s.db.QueryRowContext(ctx, `
		SELECT price, paid_amount FROM tickets WHERE id = $1
	`, ticketID).Scan(&price, &paid)
	if err == sql.ErrNoRows {
		return "", "", ErrTicketNotFound
	}
	if err != nil {
		return "", "", err
	}

	remaining := price - paid
	if remaining < statusTolerance {
		return "", "", ErrTicketAlreadyPaid
	}

	slip := ReceiptSlip{
		TicketID:  ticketID,
		Remaining: remaining,
		Currency:  s.config.Currency,
		Nonce:     generateNonce(),
		IssuedAt:  time.Now().Unix(),
	}
	payload, err := json.Marshal(slip)
	if err != nil {
		return "", "", err
	}

	code := base64.URLEncoding.EncodeToString(payload)
	key := fmt.Sprintf("receipt:%s", code)
	if err := s.redis.Set(ctx, key, payload, s.config.ReceiptTTL).Err(); err != nil {
		return "", "", err
	}

	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return "", "", err
	}

	return code, base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// RedeemSlip resolves a scanned slip code back to its payload and burns it.
func (s *ReceiptService) RedeemSlip(ctx context.Context, code string) (*ReceiptSlip, error) {
	if s.redis == nil {
		return nil, errors.New("receipt slips require Redis")
	}

	key := fmt.Sprintf("receipt:%s", code)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, errors.New("invalid or expired receipt slip")
	}
	if err != nil {
		return nil, err
	}

	var slip ReceiptSlip
	if err := json.Unmarshal(data, &slip); err != nil {
		return nil, err
	}

	s.redis.Del(ctx, key)

	return &slip, nil
}

func generateNonce() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
