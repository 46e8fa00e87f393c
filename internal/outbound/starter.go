package outbound

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/foxseedlab/kaishu/internal/phone"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/voice"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrPhoneRejected    = errors.New("phone number failed validation")
)

type Result struct {
	Customer *repository.Customer
	CallData json.RawMessage
}

// Starter places an outbound collections call. When lookup is enabled
// the number is validated first; lookup outages do not block the call.
type Starter struct {
	customers     repository.CustomerRepository
	validator     phone.Validator
	caller        voice.Caller
	lookupEnabled bool
}

func NewStarter(customers repository.CustomerRepository, validator phone.Validator, caller voice.Caller, lookupEnabled bool) *Starter {
	return &Starter{customers: customers, validator: validator, caller: caller, lookupEnabled: lookupEnabled}
}

func (s *Starter) StartCall(ctx context.Context, customerID int64) (*Result, error) {
	customer, err := s.customers.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	number, err := s.resolveNumber(ctx, customer)
	if err != nil {
		return nil, err
	}
	data, err := s.caller.StartCall(ctx, voice.StartCallInput{CustomerNumber: number, CustomerName: customer.Name})
	if err != nil {
		return nil, fmt.Errorf("start call: %w", err)
	}
	slog.Info("outbound call started", "customer_id", customer.ID)
	return &Result{Customer: customer, CallData: data}, nil
}

func (s *Starter) resolveNumber(ctx context.Context, customer *repository.Customer) (string, error) {
	if !s.lookupEnabled {
		return customer.Phone, nil
	}
	lookup, err := s.validator.Lookup(ctx, customer.Phone)
	if err != nil {
		slog.Warn("phone lookup unavailable; dialing stored number", "customer_id", customer.ID, "error", err)
		return customer.Phone, nil
	}
	if !lookup.Valid {
		return "", fmt.Errorf("%w: %s", ErrPhoneRejected, customer.Phone)
	}
	if lookup.PhoneNumber != "" {
		return lookup.PhoneNumber, nil
	}
	return customer.Phone, nil
}
