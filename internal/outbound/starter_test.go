package outbound

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/foxseedlab/kaishu/internal/phone"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/foxseedlab/kaishu/internal/voice"
)

type mockRepository struct {
	customers map[int64]*repository.Customer
}

func (m *mockRepository) ListCustomers(context.Context) ([]repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) ListPendingCustomers(context.Context) ([]repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) GetCustomerByID(_ context.Context, id int64) (*repository.Customer, error) {
	return m.customers[id], nil
}

func (m *mockRepository) GetCustomerByPhone(context.Context, string) (*repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) CreateCustomer(context.Context, repository.CreateCustomerInput) (*repository.Customer, error) {
	return nil, nil
}

func (m *mockRepository) UpdateCallOutcome(context.Context, repository.UpdateCallOutcomeInput) error {
	return nil
}

type mockValidator struct {
	lookup *phone.Lookup
	err    error
	calls  int
}

func (m *mockValidator) Lookup(context.Context, string) (*phone.Lookup, error) {
	m.calls++
	return m.lookup, m.err
}

type mockCaller struct {
	inputs []voice.StartCallInput
	err    error
}

func (m *mockCaller) StartCall(_ context.Context, input voice.StartCallInput) (json.RawMessage, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return json.RawMessage(`{"id":"call-1"}`), nil
}

func newRepo() *mockRepository {
	return &mockRepository{customers: map[int64]*repository.Customer{
		1: {ID: 1, Name: "Asha", Phone: "5551234567"},
	}}
}

func TestStartCall_WithoutLookup(t *testing.T) {
	validator := &mockValidator{}
	caller := &mockCaller{}
	res, err := NewStarter(newRepo(), validator, caller, false).StartCall(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if validator.calls != 0 {
		t.Fatal("lookup must not run when disabled")
	}
	if caller.inputs[0].CustomerNumber != "5551234567" || caller.inputs[0].CustomerName != "Asha" {
		t.Fatalf("unexpected call input: %+v", caller.inputs[0])
	}
	if string(res.CallData) != `{"id":"call-1"}` || res.Customer.ID != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestStartCall_UsesNormalizedNumber(t *testing.T) {
	validator := &mockValidator{lookup: &phone.Lookup{Valid: true, PhoneNumber: "+15551234567"}}
	caller := &mockCaller{}
	if _, err := NewStarter(newRepo(), validator, caller, true).StartCall(context.Background(), 1); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if caller.inputs[0].CustomerNumber != "+15551234567" {
		t.Fatalf("expected normalized number, got %s", caller.inputs[0].CustomerNumber)
	}
}

func TestStartCall_InvalidNumberIsRejected(t *testing.T) {
	caller := &mockCaller{}
	_, err := NewStarter(newRepo(), &mockValidator{lookup: &phone.Lookup{Valid: false}}, caller, true).StartCall(context.Background(), 1)
	if !errors.Is(err, ErrPhoneRejected) {
		t.Fatalf("expected ErrPhoneRejected, got %v", err)
	}
	if len(caller.inputs) != 0 {
		t.Fatal("rejected number must not be dialed")
	}
}

func TestStartCall_LookupOutageStillDials(t *testing.T) {
	caller := &mockCaller{}
	_, err := NewStarter(newRepo(), &mockValidator{err: errors.New("lookup down")}, caller, true).StartCall(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(caller.inputs) != 1 || caller.inputs[0].CustomerNumber != "5551234567" {
		t.Fatalf("expected stored number to be dialed, got %+v", caller.inputs)
	}
}

func TestStartCall_UnknownCustomer(t *testing.T) {
	_, err := NewStarter(newRepo(), &mockValidator{}, &mockCaller{}, false).StartCall(context.Background(), 42)
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestStartCall_CallerFailure(t *testing.T) {
	_, err := NewStarter(newRepo(), &mockValidator{}, &mockCaller{err: voice.ErrNotConfigured}, false).StartCall(context.Background(), 1)
	if !errors.Is(err, voice.ErrNotConfigured) {
		t.Fatalf("expected wrapped ErrNotConfigured, got %v", err)
	}
}
