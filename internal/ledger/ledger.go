// Package ledger persists expense records keyed by chat id and answers the
// two aggregations the report needs.
package ledger

import (
	"context"

	"github.com/rogerio1982/app-gastos/internal/core"
)

// Store is the narrow persistence port. Each operation is a single atomic
// unit; no transaction spans multiple calls. Category totals are returned
// in descending subtotal order, ties broken alphabetically.
type Store interface {
	Append(ctx context.Context, chatID string, p core.ParsedExpense) (core.ExpenseRecord, error)
	TotalFor(ctx context.Context, chatID string) (core.Money, error)
	TotalsByCategory(ctx context.Context, chatID string) ([]core.CategoryTotal, error)
}
