package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// DefaultCategory is assigned when no category can be determined.
	DefaultCategory = "general"
	// DefaultDescription is assigned when the message carries no usable text.
	DefaultDescription = "expense"
)

type (
	Money struct {
		Cents int64
	}

	// ParsedExpense is the interpreter's output: the structured fields
	// extracted from one free-text message. It is never persisted as-is.
	ParsedExpense struct {
		Amount      Money
		Category    string
		Description string
	}

	// ExpenseRecord is one persisted ledger entry. Records are immutable
	// once created; there is no update or delete.
	ExpenseRecord struct {
		ID          int64
		ChatID      string
		Amount      Money
		Category    string
		Description string
		CreatedAt   time.Time
	}

	// CategoryTotal is an amount aggregated by category name.
	CategoryTotal struct {
		Name   string
		Amount Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyChatID   = errors.New("empty chat id")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Normalize fills in the generic defaults for missing category/description.
func (p ParsedExpense) Normalize() ParsedExpense {
	if strings.TrimSpace(p.Category) == "" {
		p.Category = DefaultCategory
	}
	if strings.TrimSpace(p.Description) == "" {
		p.Description = DefaultDescription
	}
	return p
}

func (p ParsedExpense) Validate() error {
	return p.Amount.Validate()
}

func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.ChatID) == "" {
		return ErrEmptyChatID
	}
	return r.Amount.Validate()
}
