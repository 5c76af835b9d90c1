package events

import (
	"encoding/json"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionCreated = "transaction.created"
	TransactionDeleted = "transaction.deleted"
)

// TransactionEvent announces a change to a user's transactions. Both kinds carry the
// full transaction so consumers can apply or reverse its effect on a balance.
type TransactionEvent struct {
	Event           string           `json:"event"`
	TransactionID   uuid.UUID        `json:"transactionId"`
	UserID          uuid.UUID        `json:"userId"`
	AccountID       *uuid.UUID       `json:"accountId,omitempty"`
	CategoryID      *uuid.UUID       `json:"categoryId,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	TransactionType string           `json:"type,omitempty"`
	Method          string           `json:"method,omitempty"`
	OccurredAt      time.Time        `json:"occurredAt"`
}

// NewTransactionCreatedEvent builds the event published after a transaction is stored
func NewTransactionCreatedEvent(tx *models.Transaction) *TransactionEvent {
	return newTransactionEvent(TransactionCreated, tx)
}

// NewTransactionDeletedEvent builds the event published after a transaction is removed
func NewTransactionDeletedEvent(tx *models.Transaction) *TransactionEvent {
	return newTransactionEvent(TransactionDeleted, tx)
}

func newTransactionEvent(event string, tx *models.Transaction) *TransactionEvent {
	amount := tx.Amount
	accountID := tx.AccountID
	categoryID := tx.CategoryID

	return &TransactionEvent{
		Event:           event,
		TransactionID:   tx.ID,
		UserID:          tx.UserID,
		AccountID:       &accountID,
		CategoryID:      &categoryID,
		Amount:          &amount,
		TransactionType: tx.Type,
		Method:          tx.Method,
		OccurredAt:      time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes an event published by this service
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var event TransactionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
