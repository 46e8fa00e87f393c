package repository

import (
	"context"
	"errors"

	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresCustomerColumns = `id, name, phone, to_char(due_date, 'YYYY-MM-DD'), loan_amount, call_status, notes`

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListCustomers(ctx context.Context) ([]repository.Customer, error) {
	return r.queryCustomers(ctx, `SELECT `+postgresCustomerColumns+` FROM customers ORDER BY id ASC`)
}

func (r *PostgresRepository) ListPendingCustomers(ctx context.Context) ([]repository.Customer, error) {
	return r.queryCustomers(ctx,
		`SELECT `+postgresCustomerColumns+` FROM customers WHERE call_status = $1 ORDER BY id ASC`,
		string(repository.CallStatusPending))
}

func (r *PostgresRepository) GetCustomerByID(ctx context.Context, id int64) (*repository.Customer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postgresCustomerColumns+` FROM customers WHERE id = $1`, id)
	return scanPostgresCustomer(row)
}

func (r *PostgresRepository) GetCustomerByPhone(ctx context.Context, phone string) (*repository.Customer, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+postgresCustomerColumns+` FROM customers WHERE phone = $1 ORDER BY id ASC LIMIT 1`,
		phone)
	return scanPostgresCustomer(row)
}

func (r *PostgresRepository) CreateCustomer(ctx context.Context, input repository.CreateCustomerInput) (*repository.Customer, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO customers (name, phone, due_date, loan_amount)
		 VALUES ($1, $2, $3::date, $4)
		 RETURNING `+postgresCustomerColumns,
		input.Name, input.Phone, input.DueDate, input.LoanAmount)
	return scanPostgresCustomer(row)
}

func (r *PostgresRepository) UpdateCallOutcome(ctx context.Context, input repository.UpdateCallOutcomeInput) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE customers SET call_status = $2, notes = $3 WHERE id = $1`,
		input.CustomerID, string(input.Status), input.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrCustomerNotFound
	}
	return nil
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]repository.Customer, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []repository.Customer{}
	for rows.Next() {
		c, err := scanPostgresCustomer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

func scanPostgresCustomer(row pgx.Row) (*repository.Customer, error) {
	var c repository.Customer
	var status string
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.DueDate, &c.LoanAmount, &status, &c.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.CallStatus = repository.CallStatus(status)
	return &c, nil
}
