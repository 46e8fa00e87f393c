package repository

import (
	"context"
	"errors"
)

// CustomerRepository returns (nil, nil) from single-row lookups when no row matches.
type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
	ListPendingCustomers(ctx context.Context) ([]Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*Customer, error)
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*Customer, error)
	UpdateCallOutcome(ctx context.Context, input UpdateCallOutcomeInput) error
}

type Repository interface {
	CustomerRepository
	Close() error
}

// ErrCustomerNotFound is returned by writes that target a missing customer.
var ErrCustomerNotFound = errors.New("customer not found")
