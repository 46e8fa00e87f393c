package phone

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("phone lookup is not configured")

type Lookup struct {
	Valid       bool   `json:"valid"`
	PhoneNumber string `json:"phone_number"`
	CountryCode string `json:"country_code"`
	Type        string `json:"type"`
}

type Validator interface {
	Lookup(ctx context.Context, number string) (*Lookup, error)
}
