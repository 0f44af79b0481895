// Package smtp implements a Provider that submits messages to an
// authenticated outbound SMTP relay.
package smtp

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/shineum/blog-notify/internal/email"
)

// Config holds the relay connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Provider submits messages over a plaintext connection upgraded with
// STARTTLS and authenticated with the configured credentials. A fresh
// connection is dialed for every Send and closed on all paths.
type Provider struct {
	dialer *gomail.Dialer
}

// New creates a new SMTP Provider for the given relay.
func New(cfg Config) *Provider {
	return &Provider{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send transmits msg as a single message addressed to the full recipient
// list, with the HTML content as the only body part. The context is unused;
// the underlying dialer has no cancellation support.
func (p *Provider) Send(_ context.Context, msg *email.Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp submission to %s:%d failed: %w", p.dialer.Host, p.dialer.Port, err)
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "smtp"
}

// Host returns the configured relay host.
func (p *Provider) Host() string {
	return p.dialer.Host
}

// Port returns the configured relay port.
func (p *Provider) Port() int {
	return p.dialer.Port
}
