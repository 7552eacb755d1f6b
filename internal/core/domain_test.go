package core

import "testing"

func TestParsedExpenseNormalize(t *testing.T) {
	p := ParsedExpense{Amount: Money{Cents: 3500}}.Normalize()
	if p.Category != DefaultCategory {
		t.Fatalf("category = %q, want %q", p.Category, DefaultCategory)
	}
	if p.Description != DefaultDescription {
		t.Fatalf("description = %q, want %q", p.Description, DefaultDescription)
	}

	p = ParsedExpense{Amount: Money{Cents: 100}, Category: "food", Description: "lunch"}.Normalize()
	if p.Category != "food" || p.Description != "lunch" {
		t.Fatalf("normalize overwrote populated fields: %+v", p)
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	rec := ExpenseRecord{ChatID: "123", Amount: Money{Cents: 100}}
	if err := rec.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	rec = ExpenseRecord{ChatID: "", Amount: Money{Cents: 100}}
	if err := rec.Validate(); err != ErrEmptyChatID {
		t.Fatalf("expected ErrEmptyChatID, got %v", err)
	}

	rec = ExpenseRecord{ChatID: "123", Amount: Money{Cents: 0}}
	if err := rec.Validate(); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
