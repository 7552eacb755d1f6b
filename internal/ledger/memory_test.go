package ledger

import (
	"context"
	"testing"

	"github.com/rogerio1982/app-gastos/internal/core"
)

func TestMemoryStoreAppendAndTotal(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec, err := s.Append(ctx, "chat-1", core.ParsedExpense{Amount: core.Money{Cents: 3500}})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.ID != 1 {
		t.Fatalf("first id = %d, want 1", rec.ID)
	}
	if rec.Category != core.DefaultCategory || rec.Description != core.DefaultDescription {
		t.Fatalf("defaults not applied: %+v", rec)
	}

	total, err := s.TotalFor(ctx, "chat-1")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.Cents != 3500 {
		t.Fatalf("total = %d, want 3500", total.Cents)
	}

	// Other chats are unaffected
	total, err = s.TotalFor(ctx, "chat-2")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.Cents != 0 {
		t.Fatalf("unrelated chat total = %d, want 0", total.Cents)
	}
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Append(ctx, "", core.ParsedExpense{Amount: core.Money{Cents: 100}}); err == nil {
		t.Fatal("expected error for empty chat id")
	}
	if _, err := s.Append(ctx, "chat-1", core.ParsedExpense{}); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestMemoryStoreTotalsByCategory(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	appends := []struct {
		cents    int64
		category string
	}{
		{1000, "food"},
		{2000, "food"},
		{500, "transport"},
		{500, "bills"},
	}
	for _, a := range appends {
		if _, err := s.Append(ctx, "chat-1", core.ParsedExpense{
			Amount:   core.Money{Cents: a.cents},
			Category: a.category,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	totals, err := s.TotalsByCategory(ctx, "chat-1")
	if err != nil {
		t.Fatalf("totals by category: %v", err)
	}
	if len(totals) != 3 {
		t.Fatalf("got %d categories, want 3", len(totals))
	}

	// Descending subtotal, ties alphabetical
	want := []core.CategoryTotal{
		{Name: "food", Amount: core.Money{Cents: 3000}},
		{Name: "bills", Amount: core.Money{Cents: 500}},
		{Name: "transport", Amount: core.Money{Cents: 500}},
	}
	for i, w := range want {
		if totals[i] != w {
			t.Fatalf("totals[%d] = %+v, want %+v", i, totals[i], w)
		}
	}

	// Category subtotals partition the grand total
	var sum int64
	for _, ct := range totals {
		sum += ct.Amount.Cents
	}
	total, err := s.TotalFor(ctx, "chat-1")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if sum != total.Cents {
		t.Fatalf("category sums %d != total %d", sum, total.Cents)
	}
}

func TestMemoryStoreEmptyLedger(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	total, err := s.TotalFor(ctx, "nobody")
	if err != nil || total.Cents != 0 {
		t.Fatalf("empty total = %d (err=%v), want 0", total.Cents, err)
	}
	totals, err := s.TotalsByCategory(ctx, "nobody")
	if err != nil || len(totals) != 0 {
		t.Fatalf("empty totals = %v (err=%v), want none", totals, err)
	}
}
