// Package mailer sends account activation emails.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/config"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
)

// ActivationSubject is the subject line of every activation email.
const ActivationSubject = "Activate your Adelaide Marketplace account"

// Sender delivers activation links to new users.
type Sender interface {
	SendActivationEmail(ctx context.Context, address, link string) error
}

// New returns the sender selected by cfg.EmailDriver.
func New(cfg *config.Config, log logger.Logger) (Sender, error) {
	switch cfg.EmailDriver {
	case config.EmailDriverSMTP:
		return NewSMTPSender(cfg, log)
	case config.EmailDriverLog, "":
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("mailer: unknown driver %q", cfg.EmailDriver)
	}
}

// LogSender writes activation links to the log instead of sending mail.
// Development only.
type LogSender struct {
	log logger.Logger
}

func NewLogSender(log logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendActivationEmail(ctx context.Context, address, link string) error {
	s.log.InfoContext(ctx, "activation email", "email", address, "link", link)
	return nil
}

type smtpClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	client   smtpClient
	from     string
	fromName string
	log      logger.Logger
}

// NewSMTPSender builds an SMTP client from cfg. Credentials are optional;
// STARTTLS is mandatory when cfg.SMTPUseTLS is set.
func NewSMTPSender(cfg *config.Config, log logger.Logger) (*SMTPSender, error) {
	opts := []mail.Option{mail.WithPort(cfg.SMTPPort)}
	if cfg.SMTPUseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: new smtp client: %w", err)
	}
	return &SMTPSender{
		client:   client,
		from:     cfg.EmailFromAddress,
		fromName: cfg.EmailFromName,
		log:      log,
	}, nil
}

func (s *SMTPSender) SendActivationEmail(ctx context.Context, address, link string) error {
	msg, err := activationMessage(s.fromName, s.from, address, link)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		s.log.ErrorContext(ctx, "failed to send activation email", "email", address, "error", err)
		return fmt.Errorf("mailer: send to %s: %w", address, err)
	}
	s.log.InfoContext(ctx, "activation email sent", "email", address)
	return nil
}

func activationMessage(fromName, from, to, link string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(fromName, from); err != nil {
		return nil, fmt.Errorf("mailer: from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("mailer: recipient address: %w", err)
	}
	msg.Subject(ActivationSubject)
	msg.SetBodyString(mail.TypeTextPlain, activationBody(link))
	return msg, nil
}

func activationBody(link string) string {
	var b strings.Builder
	b.WriteString("Hi there,\n\n")
	b.WriteString("Thanks for registering with the Adelaide University Marketplace.\n")
	b.WriteString("Please click the link below to activate your account:\n")
	b.WriteString(link + "\n\n")
	b.WriteString("If you did not request this email, please ignore it.\n")
	return b.String()
}
