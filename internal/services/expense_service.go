// Package services orchestrates writes across the ledger store and the
// event publisher.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rogerio1982/app-gastos/internal/core"
	"github.com/rogerio1982/app-gastos/internal/ledger"
)

// Publisher announces persisted records. *events.Client satisfies it.
type Publisher interface {
	PublishExpenseRecorded(ctx context.Context, id int64, chatID string, amountCents int64, category string) error
}

// ExpenseService is the only writer of ledger records: it appends to the
// store and then publishes a best-effort notification.
type ExpenseService struct {
	store     ledger.Store
	publisher Publisher
}

func NewExpenseService(store ledger.Store, publisher Publisher) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
	}
}

// Record persists one interpreted expense. A publish failure never fails
// the request; the record is already durable at that point.
func (s *ExpenseService) Record(ctx context.Context, chatID string, p core.ParsedExpense) (core.ExpenseRecord, error) {
	rec, err := s.store.Append(ctx, chatID, p)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("save expense: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishExpenseRecorded(ctx, rec.ID, rec.ChatID, rec.Amount.Cents, rec.Category); err != nil {
			slog.ErrorContext(ctx, "Failed to publish expense recorded message",
				"id", rec.ID, "error", err)
		}
	}

	return rec, nil
}
