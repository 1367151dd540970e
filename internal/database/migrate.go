package database

import (
	"database/sql"
	"fmt"
	"log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS agents (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'agent',
		commission_rate NUMERIC NOT NULL DEFAULT 0,
		last_login TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id UUID PRIMARY KEY,
		passenger_name TEXT NOT NULL,
		origin_code TEXT NOT NULL DEFAULT '',
		origin_city TEXT NOT NULL DEFAULT '',
		origin_country TEXT NOT NULL DEFAULT '',
		destination_code TEXT NOT NULL DEFAULT '',
		destination_city TEXT NOT NULL DEFAULT '',
		destination_country TEXT NOT NULL DEFAULT '',
		airline_code TEXT NOT NULL DEFAULT '',
		airline_name TEXT NOT NULL DEFAULT '',
		travel_date TIMESTAMPTZ,
		price NUMERIC NOT NULL CHECK (price >= 0),
		base_price NUMERIC NOT NULL DEFAULT 0,
		fees NUMERIC NOT NULL DEFAULT 0,
		paid_amount NUMERIC NOT NULL DEFAULT 0,
		payment_status TEXT NOT NULL DEFAULT 'pending',
		payment_date TIMESTAMPTZ,
		service_type TEXT NOT NULL DEFAULT 'flight',
		supplier TEXT NOT NULL DEFAULT '',
		agent_id UUID,
		agent_name TEXT NOT NULL DEFAULT '',
		order_number TEXT NOT NULL DEFAULT '',
		contact_info TEXT NOT NULL DEFAULT '',
		comments TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_payments (
		id UUID PRIMARY KEY,
		ticket_id UUID NOT NULL REFERENCES tickets(id),
		amount NUMERIC NOT NULL CHECK (amount > 0),
		payment_method TEXT NOT NULL DEFAULT 'cash',
		payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ticket_payments_ticket_id ON ticket_payments(ticket_id)`,
	`CREATE TABLE IF NOT EXISTS prepaid_clients (
		id UUID PRIMARY KEY,
		agent_id UUID,
		agent_name TEXT NOT NULL DEFAULT '',
		client_name TEXT NOT NULL,
		amount NUMERIC NOT NULL CHECK (amount > 0),
		payment_method TEXT NOT NULL DEFAULT 'cash',
		payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY,
		agent_id UUID,
		amount NUMERIC NOT NULL CHECK (amount > 0),
		payment_method TEXT NOT NULL DEFAULT 'cash',
		commentary TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS consumptions (
		id UUID PRIMARY KEY,
		agent_id UUID,
		amount NUMERIC NOT NULL CHECK (amount > 0),
		payment_method TEXT NOT NULL DEFAULT 'cash',
		commentary TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies the schema statements in order. Statements are written to
// be re-runnable, so startup always calls this.
func Migrate(db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i, err)
		}
	}
	log.Println("Database schema up to date")
	return nil
}
