// Package mail composes and delivers the contact form emails.
//
// Delivery goes through a Sender. The SMTP implementation picks its
// transport once at startup: the authenticated Gmail mailbox when an app
// password is configured, otherwise a throwaway Ethereal account for
// development.
package mail

import (
	"context"
	"fmt"
)

// Message is one outgoing HTML email. The From header is always the
// configured operator identity, never the contact form sender.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// DeliveryInfo describes an accepted message.
type DeliveryInfo struct {
	MessageID string
	// InboxURL and InboxUser are set when the message went to an Ethereal
	// test inbox: log in at InboxURL as InboxUser to read it.
	InboxURL  string
	InboxUser string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) (DeliveryInfo, error)
}

// EmailError reports a failed delivery. It is logged by callers and never
// shown to the person who filled in the form.
type EmailError struct {
	To  string
	Err error
}

func (e *EmailError) Error() string {
	return fmt.Sprintf("mail: send to %s: %v", e.To, e.Err)
}

func (e *EmailError) Unwrap() error { return e.Err }
