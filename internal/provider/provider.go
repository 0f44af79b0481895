// Package provider defines the interface for email delivery backends.
package provider

import (
	"context"

	"github.com/shineum/blog-notify/internal/email"
)

// Provider is the interface that email delivery backends must implement.
// Each provider handles the actual transmission of a rendered notification
// to the target service (SMTP relay, SES, Microsoft Graph, stdout).
// Every send is attempted exactly once; retry policy is deliberately absent.
type Provider interface {
	// Send delivers an email message through this provider.
	// It returns an error if the delivery fails.
	Send(ctx context.Context, msg *email.Message) error

	// Name returns the human-readable name of this provider.
	Name() string
}
