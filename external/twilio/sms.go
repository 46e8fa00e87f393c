package twilio

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/foxseedlab/kaishu/internal/sms"
)

type SMSSender struct {
	c *client
}

func NewSMSSender(cfg Config) sms.Sender {
	return &SMSSender{c: newClient(cfg)}
}

func (s *SMSSender) Send(ctx context.Context, to, body string) error {
	if !s.c.credentialsSet() || s.c.cfg.FromNumber == "" {
		return sms.ErrNotConfigured
	}
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.c.cfg.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.c.cfg.BaseURL, url.PathEscape(s.c.cfg.AccountSID))
	var resp struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := s.c.do(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &resp); err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	slog.Info("sms queued", "to", to, "sid", resp.SID, "status", resp.Status)
	return nil
}
