package interpreter

import (
	"context"
	"errors"
	"testing"

	"github.com/rogerio1982/app-gastos/internal/core"
)

type fakeExtractor struct {
	parsed core.ParsedExpense
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (core.ParsedExpense, error) {
	f.calls++
	return f.parsed, f.err
}

func TestInterpretFastPath(t *testing.T) {
	cases := []struct {
		name     string
		message  string
		cents    int64
		desc     string
	}{
		{"plain integer", "gastei 35 reais com almoço", 3500, "com almoço"},
		{"comma decimal", "gastei 35,50 reais no mercado", 3550, "no mercado"},
		{"dot decimal", "uber 12.50", 1250, "uber"},
		{"number only", "35", 3500, core.DefaultDescription},
		{"uppercase fillers", "GASTEI 20 REAIS farmácia", 2000, "farmácia"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext := &fakeExtractor{}
			parsed, err := New(ext).Interpret(context.Background(), tc.message)
			if err != nil {
				t.Fatalf("interpret: %v", err)
			}
			if parsed.Amount.Cents != tc.cents {
				t.Fatalf("amount = %d cents, want %d", parsed.Amount.Cents, tc.cents)
			}
			if parsed.Category != core.DefaultCategory {
				t.Fatalf("category = %q, fast path must always use %q", parsed.Category, core.DefaultCategory)
			}
			if parsed.Description != tc.desc {
				t.Fatalf("description = %q, want %q", parsed.Description, tc.desc)
			}
			if ext.calls != 0 {
				t.Fatalf("extractor called %d times on fast path", ext.calls)
			}
		})
	}
}

func TestInterpretFallback(t *testing.T) {
	ext := &fakeExtractor{parsed: core.ParsedExpense{
		Amount:      core.Money{Cents: 4200},
		Category:    "food",
		Description: "dinner out",
	}}
	parsed, err := New(ext).Interpret(context.Background(), "spent a fortune on dinner")
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	if ext.calls != 1 {
		t.Fatalf("extractor called %d times, want 1", ext.calls)
	}
	if parsed.Amount.Cents != 4200 || parsed.Category != "food" {
		t.Fatalf("unexpected parse: %+v", parsed)
	}
}

func TestInterpretFallbackError(t *testing.T) {
	ext := &fakeExtractor{err: errors.New("service unavailable")}
	_, err := New(ext).Interpret(context.Background(), "no digits here")
	if !errors.Is(err, ErrCannotInterpret) {
		t.Fatalf("expected ErrCannotInterpret, got %v", err)
	}
}

func TestInterpretFallbackInvalidAmount(t *testing.T) {
	ext := &fakeExtractor{parsed: core.ParsedExpense{Category: "food"}}
	_, err := New(ext).Interpret(context.Background(), "no digits here")
	if !errors.Is(err, ErrCannotInterpret) {
		t.Fatalf("expected ErrCannotInterpret for zero amount, got %v", err)
	}
}

func TestInterpretNoExtractorConfigured(t *testing.T) {
	_, err := New(nil).Interpret(context.Background(), "no digits here")
	if !errors.Is(err, ErrCannotInterpret) {
		t.Fatalf("expected ErrCannotInterpret, got %v", err)
	}
}

func TestInterpretZeroTokenFallsBack(t *testing.T) {
	ext := &fakeExtractor{parsed: core.ParsedExpense{Amount: core.Money{Cents: 500}}}
	parsed, err := New(ext).Interpret(context.Background(), "gastei 0 reais")
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	if ext.calls != 1 {
		t.Fatalf("extractor calls = %d, want 1 (zero is not a valid amount)", ext.calls)
	}
	if parsed.Amount.Cents != 500 {
		t.Fatalf("amount = %d, want 500", parsed.Amount.Cents)
	}
}
