package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rogerio1982/app-gastos/internal/core"
)

// MemoryStore keeps records in process memory. It backs the "memory"
// backend and the package tests; aggregation order matches SQLiteStore.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	items  []core.ExpenseRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Append(_ context.Context, chatID string, p core.ParsedExpense) (core.ExpenseRecord, error) {
	p = p.Normalize()
	rec := core.ExpenseRecord{
		ChatID:      chatID,
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	s.items = append(s.items, rec)
	return rec, nil
}

func (s *MemoryStore) TotalFor(_ context.Context, chatID string) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cents int64
	for _, rec := range s.items {
		if rec.ChatID == chatID {
			cents += rec.Amount.Cents
		}
	}
	return core.Money{Cents: cents}, nil
}

func (s *MemoryStore) TotalsByCategory(_ context.Context, chatID string) ([]core.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sums := make(map[string]int64)
	for _, rec := range s.items {
		if rec.ChatID == chatID {
			sums[rec.Category] += rec.Amount.Cents
		}
	}

	totals := make([]core.CategoryTotal, 0, len(sums))
	for name, cents := range sums {
		totals = append(totals, core.CategoryTotal{Name: name, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount.Cents != totals[j].Amount.Cents {
			return totals[i].Amount.Cents > totals[j].Amount.Cents
		}
		return totals[i].Name < totals[j].Name
	})
	if len(totals) == 0 {
		return nil, nil
	}
	return totals, nil
}
