package mail

import (
	"context"
	"log/slog"
	"sync"

	"github.com/portfolio/backend/internal/config"
)

const (
	gmailHost    = "smtp.gmail.com"
	gmailSSLPort = 465

	etherealHost   = "smtp.ethereal.email"
	etherealPort   = 587
	etherealWebURL = "https://ethereal.email"
)

// Transport is an SMTP endpoint plus credentials.
type Transport struct {
	Host     string
	Port     int
	SSL      bool // implicit TLS; false means STARTTLS
	Username string
	Password string
	// Ethereal marks a test inbox whose messages can be read on the web.
	Ethereal bool
	WebURL   string // inbox login page, Ethereal only
}

// TransportSource yields the transport to use for one send.
type TransportSource interface {
	Transport(ctx context.Context) Transport
}

// NewTransportSource chooses the delivery strategy from configuration.
// With an operator password the Gmail mailbox is used for every send;
// otherwise a throwaway Ethereal account is provisioned on demand.
func NewTransportSource(cfg config.MailConfig, prov Provisioner) TransportSource {
	if cfg.UsesProductionMail() {
		return StaticSource(ProductionTransport(cfg))
	}
	return NewThrowawaySource(prov, FallbackTransport(cfg))
}

// ProductionTransport is the authenticated Gmail transport.
func ProductionTransport(cfg config.MailConfig) Transport {
	return Transport{
		Host:     gmailHost,
		Port:     gmailSSLPort,
		SSL:      true,
		Username: cfg.OperatorEmail,
		Password: cfg.OperatorPassword,
	}
}

// FallbackTransport is the static Ethereal account used when provisioning
// a fresh one fails. It may not be able to authenticate.
func FallbackTransport(cfg config.MailConfig) Transport {
	return Transport{
		Host:     etherealHost,
		Port:     etherealPort,
		Username: cfg.EtherealEmail,
		Password: cfg.EtherealPassword,
		Ethereal: true,
		WebURL:   etherealWebURL,
	}
}

// StaticSource always returns the same transport.
type StaticSource Transport

func (s StaticSource) Transport(context.Context) Transport { return Transport(s) }

// ThrowawaySource provisions an Ethereal account the first time it is asked
// and reuses it afterwards. Failed provisioning is not cached: the fallback
// transport is returned and the next call tries again.
type ThrowawaySource struct {
	prov     Provisioner
	fallback Transport

	mu      sync.Mutex
	account *Transport
}

func NewThrowawaySource(prov Provisioner, fallback Transport) *ThrowawaySource {
	return &ThrowawaySource{prov: prov, fallback: fallback}
}

func (s *ThrowawaySource) Transport(ctx context.Context) Transport {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account != nil {
		return *s.account
	}

	acct, err := s.prov.Provision(ctx)
	if err != nil {
		slog.Warn("ethereal account provisioning failed, using fallback transport",
			"error", err, "username", s.fallback.Username)
		return s.fallback
	}

	t := acct.Transport()
	slog.Info("ethereal test account created", "username", t.Username, "web", t.WebURL)
	s.account = &t
	return t
}
