package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rogerio1982/app-gastos/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the default Store implementation backed by a local
// SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, chatID string, p core.ParsedExpense) (core.ExpenseRecord, error) {
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

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO gastos (chat_id, valor, categoria, descricao, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ChatID, rec.Amount.Cents, rec.Category, rec.Description, rec.CreatedAt)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("expense id: %w", err)
	}
	rec.ID = id

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", rec.ID,
		"chat_id", rec.ChatID,
		"amount_cents", rec.Amount.Cents,
		"category", rec.Category)

	return rec, nil
}

func (s *SQLiteStore) TotalFor(ctx context.Context, chatID string) (core.Money, error) {
	var cents int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(valor), 0) FROM gastos WHERE chat_id = ?`, chatID).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum expenses: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

func (s *SQLiteStore) TotalsByCategory(ctx context.Context, chatID string) ([]core.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT categoria, SUM(valor) AS total
		 FROM gastos
		 WHERE chat_id = ?
		 GROUP BY categoria
		 ORDER BY total DESC, categoria ASC`, chatID)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var name string
		var cents int64
		if err := rows.Scan(&name, &cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, core.CategoryTotal{Name: name, Amount: core.Money{Cents: cents}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return totals, nil
}
