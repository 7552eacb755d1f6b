package interpreter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/rogerio1982/app-gastos/internal/core"
)

const defaultExtractTimeout = 15 * time.Second

const extractionPromptTemplate = `Extract the expense data from the text below and return ONLY a JSON object, no prose and no markdown.

Text: %q

Format:
{
  "amount": number,
  "category": string,
  "description": string
}`

// AnthropicExtractor implements Extractor with a single bounded
// message-completion call. The SDK reads ANTHROPIC_API_KEY from the env.
type AnthropicExtractor struct {
	client  *anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

var _ Extractor = (*AnthropicExtractor)(nil)

func NewAnthropicExtractor() *AnthropicExtractor {
	c := anthropic.NewClient()
	return &AnthropicExtractor{
		client:  &c,
		model:   anthropic.ModelClaude3_7SonnetLatest,
		timeout: defaultExtractTimeout,
	}
}

func (e *AnthropicExtractor) Extract(ctx context.Context, message string) (core.ParsedExpense, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := fmt.Sprintf(extractionPromptTemplate, message)
	msg, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     e.model,
		MaxTokens: 256,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return core.ParsedExpense{}, fmt.Errorf("extraction call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += tb.Text
		}
	}
	return parseExtraction(text)
}

// parseExtraction decodes the service's strictly-JSON reply. Code fences are
// tolerated since models occasionally wrap output despite instructions.
func parseExtraction(raw string) (core.ParsedExpense, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return core.ParsedExpense{}, errors.New("empty extraction response")
	}

	var out struct {
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return core.ParsedExpense{}, fmt.Errorf("malformed extraction response: %w", err)
	}

	amount, err := core.MoneyFromFloat(out.Amount)
	if err != nil {
		return core.ParsedExpense{}, fmt.Errorf("extraction amount %v: %w", out.Amount, err)
	}

	return core.ParsedExpense{
		Amount:      amount,
		Category:    strings.TrimSpace(out.Category),
		Description: strings.TrimSpace(out.Description),
	}.Normalize(), nil
}
