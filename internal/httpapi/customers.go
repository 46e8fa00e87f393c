package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/foxseedlab/kaishu/internal/repository"
)

type customerList struct {
	Customers []repository.Customer `json:"customers"`
}

type addCustomerRequest struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	DueDate    string  `json:"due_date"`
	LoanAmount float64 `json:"loan_amount"`
}

type addCustomerResponse struct {
	Status   string               `json:"status"`
	Customer *repository.Customer `json:"customer"`
}

func (s *Server) handleAllCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := s.customers.ListCustomers(r.Context())
	if err != nil {
		slog.Error("list customers failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}
	writeJSON(w, http.StatusOK, customerList{Customers: list})
}

func (s *Server) handlePendingCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := s.customers.ListPendingCustomers(r.Context())
	if err != nil {
		slog.Error("list pending customers failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}
	writeJSON(w, http.StatusOK, customerList{Customers: list})
}

func (s *Server) handleAddCustomer(w http.ResponseWriter, r *http.Request) {
	var req addCustomerRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCustomerBodySize))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object with name, phone, due_date and loan_amount")
		return
	}
	input := repository.CreateCustomerInput{
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		DueDate:    strings.TrimSpace(req.DueDate),
		LoanAmount: req.LoanAmount,
	}
	if err := input.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := s.customers.CreateCustomer(r.Context(), input)
	if err != nil || c == nil {
		slog.Error("create customer failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create customer")
		return
	}
	slog.Info("customer created", "customer_id", c.ID)
	writeJSON(w, http.StatusCreated, addCustomerResponse{Status: "success", Customer: c})
}
