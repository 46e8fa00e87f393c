package twilio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/foxseedlab/kaishu/internal/phone"
)

type LookupValidator struct {
	c *client
}

func NewLookupValidator(cfg Config) phone.Validator {
	return &LookupValidator{c: newClient(cfg)}
}

func (v *LookupValidator) Lookup(ctx context.Context, number string) (*phone.Lookup, error) {
	if !v.c.credentialsSet() {
		return nil, phone.ErrNotConfigured
	}
	endpoint := fmt.Sprintf("%s/v2/PhoneNumbers/%s?Fields=line_type_intelligence", v.c.cfg.LookupBaseURL, url.PathEscape(number))
	var resp struct {
		Valid                bool   `json:"valid"`
		PhoneNumber          string `json:"phone_number"`
		CountryCode          string `json:"country_code"`
		LineTypeIntelligence *struct {
			Type string `json:"type"`
		} `json:"line_type_intelligence"`
	}
	if err := v.c.do(ctx, http.MethodGet, endpoint, nil, "", &resp); err != nil {
		return nil, fmt.Errorf("lookup phone number: %w", err)
	}
	out := &phone.Lookup{
		Valid:       resp.Valid,
		PhoneNumber: resp.PhoneNumber,
		CountryCode: resp.CountryCode,
		Type:        "unknown",
	}
	if resp.LineTypeIntelligence != nil && resp.LineTypeIntelligence.Type != "" {
		out.Type = resp.LineTypeIntelligence.Type
	}
	return out, nil
}
