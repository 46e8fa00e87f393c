package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/foxseedlab/kaishu/internal/repository"
	_ "modernc.org/sqlite"
)

const sqliteCustomerColumns = `id, name, phone, due_date, loan_amount, call_status, notes`

type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
// path is a filesystem path or a "file:" URI; ":memory:" gives a private
// in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	if file, ok := sqliteFilePath(path); ok {
		if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// every pooled connection to ":memory:" would otherwise see its own database
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if err := RunSQLiteMigration(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migration: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) ListCustomers(ctx context.Context) ([]repository.Customer, error) {
	return r.queryCustomers(ctx, `SELECT `+sqliteCustomerColumns+` FROM customers ORDER BY id ASC`)
}

func (r *SQLiteRepository) ListPendingCustomers(ctx context.Context) ([]repository.Customer, error) {
	return r.queryCustomers(ctx,
		`SELECT `+sqliteCustomerColumns+` FROM customers WHERE call_status = ? ORDER BY id ASC`,
		string(repository.CallStatusPending))
}

func (r *SQLiteRepository) GetCustomerByID(ctx context.Context, id int64) (*repository.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteCustomerColumns+` FROM customers WHERE id = ?`, id)
	return scanSQLiteCustomer(row)
}

func (r *SQLiteRepository) GetCustomerByPhone(ctx context.Context, phone string) (*repository.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sqliteCustomerColumns+` FROM customers WHERE phone = ? ORDER BY id ASC LIMIT 1`,
		phone)
	return scanSQLiteCustomer(row)
}

func (r *SQLiteRepository) CreateCustomer(ctx context.Context, input repository.CreateCustomerInput) (*repository.Customer, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (name, phone, due_date, loan_amount) VALUES (?, ?, ?, ?)`,
		input.Name, input.Phone, input.DueDate, input.LoanAmount)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetCustomerByID(ctx, id)
}

func (r *SQLiteRepository) UpdateCallOutcome(ctx context.Context, input repository.UpdateCallOutcomeInput) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET call_status = ?, notes = ? WHERE id = ?`,
		string(input.Status), input.Notes, input.CustomerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrCustomerNotFound
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]repository.Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()
	list := []repository.Customer{}
	for rows.Next() {
		c, err := scanSQLiteCustomer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

// sqliteFilePath returns the on-disk file behind a DSN, dropping the
// "file:" scheme and URI parameters. In-memory DSNs have no file.
func sqliteFilePath(dsn string) (string, bool) {
	file := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(file, '?'); i >= 0 {
		file = file[:i]
	}
	if file == "" || strings.HasPrefix(file, ":memory:") {
		return "", false
	}
	return file, true
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteCustomer(row rowScanner) (*repository.Customer, error) {
	var c repository.Customer
	var status string
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.DueDate, &c.LoanAmount, &status, &c.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.CallStatus = repository.CallStatus(status)
	return &c, nil
}
