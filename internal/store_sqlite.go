package internal

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	sqliteKindIncome  = "income"
	sqliteKindExpense = "expense"
	sqliteKindLimit   = "limit"
)

// SQLiteStorage keeps the ledger in a SQLite database.
// Each Load and Save opens its own connection, and Save replaces everything in one transaction.
type SQLiteStorage struct {
	Path string
}

func NewSQLiteStorage(path string) *SQLiteStorage {
	return &SQLiteStorage{Path: path}
}

func (s *SQLiteStorage) open() (*sql.DB, error) {
	if dir := filepath.Dir(s.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(s.Path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func (s *SQLiteStorage) Load() (*Ledger, error) {
	_, statErr := os.Stat(s.Path)
	created := os.IsNotExist(statErr)

	db, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreUnreadable, s.Path, err)
	}
	defer db.Close()

	if created {
		slog.Info("created empty ledger", "path", s.Path)
	}

	months := make(map[string]storedMonth)
	monthRows, err := db.Query(`SELECT month FROM months`)
	if err != nil {
		return nil, fmt.Errorf("%w: query months: %v", ErrStoreUnreadable, err)
	}
	defer monthRows.Close()
	for monthRows.Next() {
		var key string
		if err := monthRows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: scan month: %v", ErrStoreUnreadable, err)
		}
		months[key] = storedMonth{
			Income:   map[string]decimal.Decimal{},
			Expenses: map[string]decimal.Decimal{},
			Limits:   map[string]decimal.Decimal{},
		}
	}
	if err := monthRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate months: %v", ErrStoreUnreadable, err)
	}

	rows, err := db.Query(`SELECT month, kind, category, amount FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("%w: query entries: %v", ErrStoreUnreadable, err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, kind, category, amount string
		if err := rows.Scan(&key, &kind, &category, &amount); err != nil {
			return nil, fmt.Errorf("%w: scan entry: %v", ErrStoreUnreadable, err)
		}
		m, ok := months[key]
		if !ok {
			return nil, fmt.Errorf("%w: entry for unknown month %q", ErrStoreUnreadable, key)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s[%q]: %q is not a number", ErrStoreUnreadable, key, kind, category, amount)
		}
		switch kind {
		case sqliteKindIncome:
			m.Income[category] = d
		case sqliteKindExpense:
			m.Expenses[category] = d
		case sqliteKindLimit:
			m.Limits[category] = d
		default:
			return nil, fmt.Errorf("%w: unknown entry kind %q", ErrStoreUnreadable, kind)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate entries: %v", ErrStoreUnreadable, err)
	}

	ledger, err := buildLedger(months)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.Path, err)
	}
	slog.Debug("ledger loaded", "backend", "sqlite", "path", s.Path, "months", len(ledger.Months))
	return ledger, nil
}

func (s *SQLiteStorage) Save(ledger *Ledger) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM months`); err != nil {
		return fmt.Errorf("clear months: %w", err)
	}

	insertMonth, err := tx.Prepare(`INSERT INTO months (month) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("prepare month insert: %w", err)
	}
	defer insertMonth.Close()
	insertEntry, err := tx.Prepare(`INSERT INTO entries (month, kind, category, amount) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer insertEntry.Close()

	for _, key := range ledger.Keys() {
		r := ledger.Months[key]
		if _, err := insertMonth.Exec(key.String()); err != nil {
			return fmt.Errorf("insert month %s: %w", key, err)
		}
		for _, part := range []struct {
			kind    string
			amounts Amounts
		}{
			{sqliteKindIncome, r.Income},
			{sqliteKindExpense, r.Expenses},
			{sqliteKindLimit, r.Limits},
		} {
			for _, category := range part.amounts.Categories() {
				if _, err := insertEntry.Exec(key.String(), part.kind, category, part.amounts[category].String()); err != nil {
					return fmt.Errorf("insert %s %s[%q]: %w", key, part.kind, category, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger: %w", err)
	}
	slog.Debug("ledger saved", "backend", "sqlite", "path", s.Path, "months", len(ledger.Months))
	return nil
}

func runMigrations(dbPath string) error {
	// Separate connection so closing the migrator does not close the caller's handle
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
