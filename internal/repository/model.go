package repository

import (
	"fmt"
	"strings"
	"time"
)

type CallStatus string

const (
	CallStatusPending       CallStatus = "Pending"
	CallStatusSuccessful    CallStatus = "SUCCESSFUL"
	CallStatusNeedsFollowUp CallStatus = "NEEDS FOLLOW-UP"
	CallStatusUnclear       CallStatus = "UNCLEAR"
	CallStatusFailed        CallStatus = "FAILED"
)

// DueDateLayout is the ISO calendar date used for due_date.
const DueDateLayout = time.DateOnly

type Customer struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	DueDate    string     `json:"due_date"`
	LoanAmount float64    `json:"loan_amount"`
	CallStatus CallStatus `json:"call_status"`
	Notes      string     `json:"notes"`
}

// DisplayName is the name used in scripted lines; blank names read as "there".
func (c *Customer) DisplayName() string {
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return "there"
	}
	return c.Name
}

type CreateCustomerInput struct {
	Name       string
	Phone      string
	DueDate    string
	LoanAmount float64
}

func (in CreateCustomerInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	if _, err := time.Parse(DueDateLayout, in.DueDate); err != nil {
		return fmt.Errorf("due_date must be an ISO date (YYYY-MM-DD)")
	}
	if in.LoanAmount <= 0 {
		return fmt.Errorf("loan_amount must be positive")
	}
	return nil
}

type UpdateCallOutcomeInput struct {
	CustomerID int64
	Status     CallStatus
	Notes      string
}
