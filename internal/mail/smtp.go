package mail

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// deliverFunc dials the transport and hands over the message.
type deliverFunc func(ctx context.Context, t Transport, m *gomail.Msg) error

// SMTPSender sends messages from the operator identity over SMTP.
type SMTPSender struct {
	fromName  string
	fromEmail string
	source    TransportSource
	timeout   time.Duration
	deliver   deliverFunc
}

// NewSMTPSender creates a sender. timeout bounds each Send; zero disables it.
func NewSMTPSender(fromName, fromEmail string, source TransportSource, timeout time.Duration) *SMTPSender {
	return &SMTPSender{
		fromName:  fromName,
		fromEmail: fromEmail,
		source:    source,
		timeout:   timeout,
		deliver:   dialAndSend,
	}
}

var _ Sender = (*SMTPSender)(nil)

// Send builds the MIME message and delivers it. Every failure, including
// the timeout expiring, is returned as *EmailError.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (DeliveryInfo, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	m, err := s.build(msg)
	if err != nil {
		return DeliveryInfo{}, &EmailError{To: msg.To, Err: err}
	}

	t := s.source.Transport(ctx)
	if err := s.deliver(ctx, t, m); err != nil {
		return DeliveryInfo{}, &EmailError{To: msg.To, Err: err}
	}
	// go-mail may return nil from a send that was cut short.
	if err := ctx.Err(); err != nil {
		return DeliveryInfo{}, &EmailError{To: msg.To, Err: err}
	}

	// Ethereal のメッセージ ID は SMTP 応答にしか含まれず go-mail からは
	// 取得できないため、受信箱のログイン先を返す
	info := DeliveryInfo{MessageID: messageID(m)}
	if t.Ethereal {
		info.InboxURL = t.WebURL
		info.InboxUser = t.Username
	}
	slog.Debug("message sent", "message_id", info.MessageID, "host", t.Host, "port", t.Port)
	return info, nil
}

func (s *SMTPSender) build(msg Message) (*gomail.Msg, error) {
	if msg.To == "" {
		return nil, errors.New("recipient is empty")
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(s.fromName, s.fromEmail); err != nil {
		return nil, err
	}
	if err := m.To(msg.To); err != nil {
		return nil, err
	}
	m.Subject(msg.Subject)
	m.SetMessageID()
	m.SetDate()
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	return m, nil
}

func messageID(m *gomail.Msg) string {
	ids := m.GetGenHeader(gomail.HeaderMessageID)
	if len(ids) == 0 {
		return ""
	}
	return strings.Trim(ids[0], "<>")
}

func dialAndSend(ctx context.Context, t Transport, m *gomail.Msg) error {
	opts := []gomail.Option{
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(t.Username),
		gomail.WithPassword(t.Password),
	}
	if t.SSL {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSMandatory))
	}
	opts = append(opts, gomail.WithPort(t.Port))
	if deadline, ok := ctx.Deadline(); ok {
		d := time.Until(deadline)
		if d <= 0 {
			return context.DeadlineExceeded
		}
		opts = append(opts, gomail.WithTimeout(d))
	}

	c, err := gomail.NewClient(t.Host, opts...)
	if err != nil {
		return err
	}
	return c.DialAndSendWithContext(ctx, m)
}
