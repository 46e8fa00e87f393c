package sms

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("sms sender is not configured")

type Sender interface {
	Send(ctx context.Context, to, body string) error
}
