package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
	// Insecure allows plaintext servers (e.g. a local MailHog).
	Insecure bool
}

var (
	newMailClient = func(host string, opts ...mail.Option) (*mail.Client, error) {
		return mail.NewClient(host, opts...)
	}

	dialAndSend = func(ctx context.Context, c *mail.Client, msgs ...*mail.Msg) error {
		return c.DialAndSendWithContext(ctx, msgs...)
	}
)

// SMTPSender mails messages over SMTP with STARTTLS.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{mail.WithPort(s.cfg.Port)}
	if s.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.cfg.Timeout))
	}
	if s.cfg.Insecure {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

func (s *SMTPSender) buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("from %q: %w", s.cfg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("to %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.buildMsg(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDelivery, err)
	}

	c, err := newMailClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDelivery, err)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	if err := dialAndSend(ctx, c, m); err != nil {
		return fmt.Errorf("%w: %v", common.ErrDelivery, err)
	}
	return nil
}
