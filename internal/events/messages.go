package events

import (
	"encoding/json"
	"time"
)

// ExpenseRecordedMessage announces a persisted ledger entry to interested
// consumers. It carries only the compact facts; anything more can be fetched
// from the store by id.
type ExpenseRecordedMessage struct {
	ID          int64     `json:"id"`
	ChatID      string    `json:"chat_id"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewExpenseRecordedMessage(id int64, chatID string, amountCents int64, category string) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		ID:          id,
		ChatID:      chatID,
		AmountCents: amountCents,
		Category:    category,
		Timestamp:   time.Now(),
	}
}

func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
