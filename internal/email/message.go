// Package email defines the outbound message model shared by all delivery providers.
package email

// Message represents a single outbound notification email. The HTML body is
// the only body part; all recipients are addressed on one combined message,
// not one message per recipient.
type Message struct {
	From     string
	To       []string
	Subject  string
	HTMLBody string
}
