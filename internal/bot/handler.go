// Package bot holds the conversation handler: one inbound message in, one
// reply out, no state between calls beyond the ledger.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rogerio1982/app-gastos/internal/core"
	"github.com/rogerio1982/app-gastos/internal/interpreter"
)

// FailureReply is the fixed guidance sent whenever a message cannot be
// turned into a ledger entry, whatever the internal cause.
const FailureReply = "❌ Não consegui entender.\n\nExemplo:\n👉 gastei 35 reais com almoço"

// Exact-match commands that trigger a spending report instead of a write.
var reportTriggers = map[string]struct{}{
	"relatorio":  {},
	"relatório":  {},
	"total":      {},
	"/relatorio": {},
}

type (
	Interpreter interface {
		Interpret(ctx context.Context, message string) (core.ParsedExpense, error)
	}

	Recorder interface {
		Record(ctx context.Context, chatID string, p core.ParsedExpense) (core.ExpenseRecord, error)
	}

	ReportBuilder interface {
		Build(ctx context.Context, chatID string) (string, error)
	}
)

type Handler struct {
	interpreter Interpreter
	expenses    Recorder
	reports     ReportBuilder
}

func NewHandler(i Interpreter, r Recorder, b ReportBuilder) *Handler {
	return &Handler{
		interpreter: i,
		expenses:    r,
		reports:     b,
	}
}

// Handle produces the reply for one inbound message. It never returns an
// error: every internal failure collapses into the fixed guidance reply,
// distinguished only in the logs.
func (h *Handler) Handle(ctx context.Context, chatID, rawText string) string {
	command := strings.ToLower(strings.TrimSpace(rawText))

	if _, ok := reportTriggers[command]; ok {
		out, err := h.reports.Build(ctx, chatID)
		if err != nil {
			slog.ErrorContext(ctx, "Report build failed", "chat_id", chatID, "error", err)
			return FailureReply
		}
		return out
	}

	parsed, err := h.interpreter.Interpret(ctx, rawText)
	if err != nil {
		if errors.Is(err, interpreter.ErrCannotInterpret) {
			slog.WarnContext(ctx, "Message could not be interpreted", "chat_id", chatID, "error", err)
		} else {
			slog.ErrorContext(ctx, "Unexpected interpretation failure", "chat_id", chatID, "error", err)
		}
		return FailureReply
	}

	rec, err := h.expenses.Record(ctx, chatID, parsed)
	if err != nil {
		slog.ErrorContext(ctx, "Expense record failed",
			"chat_id", chatID,
			"amount_cents", parsed.Amount.Cents,
			"error", err)
		return FailureReply
	}

	return fmt.Sprintf("✅ Gasto registrado!\n\n💰 Valor: R$ %s\n📂 Categoria: %s\n📝 Descrição: %s",
		rec.Amount.Format(), rec.Category, rec.Description)
}
