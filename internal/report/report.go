// Package report renders the per-chat spending summary.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/rogerio1982/app-gastos/internal/ledger"
)

type Builder struct {
	store ledger.Store
}

func NewBuilder(store ledger.Store) *Builder {
	return &Builder{store: store}
}

// Build renders the grand total and the per-category breakdown for one chat.
// An empty ledger yields a report with total 0.00 and no category lines.
// The output is deterministic: rows come back from the store in descending
// subtotal order, ties alphabetical.
func (b *Builder) Build(ctx context.Context, chatID string) (string, error) {
	total, err := b.store.TotalFor(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("total for chat %s: %w", chatID, err)
	}
	totals, err := b.store.TotalsByCategory(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("totals by category for chat %s: %w", chatID, err)
	}

	var sb strings.Builder
	sb.WriteString("📊 Relatório de Gastos\n\n")
	sb.WriteString("💰 Total: R$ " + total.Format() + "\n\n")
	for _, ct := range totals {
		sb.WriteString("- " + ct.Name + ": R$ " + ct.Amount.Format() + "\n")
	}
	return sb.String(), nil
}
