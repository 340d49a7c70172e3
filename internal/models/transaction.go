package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction statuses
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// TransactionDB represents a transaction row in the database
type TransactionDB struct {
	ID          string          `json:"id" db:"id"`                   // Generated TRX identifier, immutable
	Type        string          `json:"type" db:"type"`               // income or expense
	Amount      decimal.Decimal `json:"amount" db:"amount"`           // Positive amount
	Currency    string          `json:"currency" db:"currency"`       // Currency code (e.g., IDR, USD)
	Date        Date            `json:"date" db:"date"`               // User supplied transaction date
	Category    string          `json:"category" db:"category"`       // Category name for the type
	Party       string          `json:"party" db:"party"`             // Counterpart name
	Description *string         `json:"description" db:"description"` // Optional free text
	ReceiptURL  *string         `json:"receipt_url" db:"receipt_url"` // Reference to the stored attachment
	Status      string          `json:"status" db:"status"`           // Pending or Completed
	ApprovedBy  *string         `json:"approved_by" db:"approved_by"` // Set on completion only
	ApprovedAt  *time.Time      `json:"approved_at" db:"approved_at"` // Set on completion only
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`   // Insert timestamp
}

// TransactionFields holds the user supplied part of a new transaction.
type TransactionFields struct {
	Type        string
	Amount      string
	Currency    string
	Date        string
	Category    string
	Party       string
	Description string
}

// TransactionEvent is published to Kafka whenever a transaction is created or approved.
type TransactionEvent struct {
	TransactionID string `json:"transaction_id"` // TransactionID is the generated TRX identifier.
	Timestamp     int64  `json:"timestamp"`      // Timestamp is the Unix timestamp (in seconds) of the event.
	Operation     string `json:"operation"`      // Operation is "created" or "approved".
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	ApprovedBy    string `json:"approved_by,omitempty"`
}
