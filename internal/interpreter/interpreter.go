// Package interpreter turns a free-text expense message into structured
// fields using a two-tier strategy: a deterministic pattern match on the
// first numeric token, with a remote extraction call as fallback. The fast
// path is a cost and latency decision: most messages carry an explicit
// number, so the nondeterministic remote call stays the exception.
package interpreter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/rogerio1982/app-gastos/internal/core"
)

// ErrCannotInterpret is returned when no amount could be determined by
// either tier.
var ErrCannotInterpret = errors.New("cannot interpret message")

// Extractor is the remote structured-extraction service. Implementations
// must return all three fields or an error; they never guess a zero amount.
type Extractor interface {
	Extract(ctx context.Context, message string) (core.ParsedExpense, error)
}

var amountPattern = regexp.MustCompile(`\d+[.,]?\d*`)

// Filler tokens stripped from the description after the amount is removed:
// verbs like "gastei"/"spent" and currency-unit words.
var fillerWords = map[string]struct{}{
	"gastei": {},
	"paguei": {},
	"reais":  {},
	"real":   {},
	"r$":     {},
	"spent":  {},
}

type Interpreter struct {
	extractor Extractor
}

func New(extractor Extractor) *Interpreter {
	return &Interpreter{extractor: extractor}
}

// Interpret parses a message into a ParsedExpense. The fast path wins
// whenever the message contains a parsable numeric token; category is always
// the generic default there, with no inference. Only a message with no
// usable number reaches the extractor.
func (i *Interpreter) Interpret(ctx context.Context, message string) (core.ParsedExpense, error) {
	text := strings.ToLower(message)

	if loc := amountPattern.FindStringIndex(text); loc != nil {
		token := text[loc[0]:loc[1]]
		cents, err := core.ParseDecimalToCents(token)
		if err == nil {
			parsed := core.ParsedExpense{
				Amount:      core.Money{Cents: cents},
				Category:    core.DefaultCategory,
				Description: stripFiller(text[:loc[0]] + text[loc[1]:]),
			}.Normalize()
			slog.DebugContext(ctx, "Interpreted expense via fast path",
				"amount_cents", parsed.Amount.Cents,
				"description", parsed.Description)
			return parsed, nil
		}
		// A numeric token that is not a valid amount (e.g. "0") is treated
		// the same as no token: fall through to the extractor.
		slog.DebugContext(ctx, "Numeric token rejected, trying fallback", "token", token, "error", err)
	}

	if i.extractor == nil {
		return core.ParsedExpense{}, fmt.Errorf("%w: no amount found and no extractor configured", ErrCannotInterpret)
	}

	parsed, err := i.extractor.Extract(ctx, message)
	if err != nil {
		return core.ParsedExpense{}, fmt.Errorf("%w: remote extraction: %s", ErrCannotInterpret, err)
	}
	parsed = parsed.Normalize()
	if err := parsed.Validate(); err != nil {
		return core.ParsedExpense{}, fmt.Errorf("%w: extractor returned invalid amount", ErrCannotInterpret)
	}
	slog.DebugContext(ctx, "Interpreted expense via remote extraction",
		"amount_cents", parsed.Amount.Cents,
		"category", parsed.Category)
	return parsed, nil
}

func stripFiller(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if _, ok := fillerWords[f]; ok {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
